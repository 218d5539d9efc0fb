package test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/db"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

// Needs a reachable postgres, e.g.
// RUN_INTEGRATION_TESTS=true TM_DB_DSN="host=localhost user=tm password=tm dbname=tm sslmode=disable"
func TestPostgresMigrationAndThresholds(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	dialector, err := db.DialectorFor("postgres")
	if err != nil {
		t.Skipf("Skipping postgres integration test: %v", err)
	}

	instance, err := db.Open(dialector)
	require.NoError(t, err)

	row := models.DefaultAlertThresholds()
	require.NoError(t, instance.Conn.Create(&row).Error)
	defer instance.Conn.Delete(&row)

	var latest models.AlertThresholds
	require.NoError(t, instance.Conn.Order("created_at desc, id desc").First(&latest).Error)
	assert.Equal(t, row.ID, latest.ID)
	assert.Equal(t, "140/90", latest.BloodPressureMax)
}
