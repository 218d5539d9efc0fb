package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/db"
	tmGrpc "liyu1981.xyz/telemonitoring-service/pkg/grpc"
	tmHttp "liyu1981.xyz/telemonitoring-service/pkg/http"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

var maxPatients int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *tmGrpc.MonitoringServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

// seedPatients creates one professional and maxPatients patients directly in the
// database the server uses, since users are managed outside the service.
func seedPatients() (models.User, []models.Patient) {
	dialector, err := db.DialectorFor(os.Getenv(common.EnvKeyDBType))
	if err != nil {
		log.Fatal(err)
	}
	conn, err := db.Open(dialector)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	run := uuid.NewString()[:8]
	professional := models.User{Name: "Loadgen Professional", Email: fmt.Sprintf("prof-%s@loadgen.local", run), Role: models.UserRoleProfessional}
	if err := conn.Conn.Create(&professional).Error; err != nil {
		log.Fatal(err)
	}

	patients := make([]models.Patient, maxPatients)
	for i := range maxPatients {
		user := models.User{Name: fmt.Sprintf("Paciente %d", i), Email: fmt.Sprintf("patient-%s-%d@loadgen.local", run, i), Role: models.UserRolePatient}
		if err := conn.Conn.Create(&user).Error; err != nil {
			log.Fatal(err)
		}
		patients[i] = models.Patient{UserID: user.ID, ResponsibleProfessionalID: &professional.ID}
		if err := conn.Conn.Create(&patients[i]).Error; err != nil {
			log.Fatal(err)
		}
	}
	return professional, patients
}

func main() {
	_ = godotenv.Load()

	professional, patients := seedPatients()
	fmt.Printf("seeded %v patients\n", maxPatients)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = tmGrpc.NewMonitoringServiceClient(conn)

	fmt.Printf("gRPC server verified and connected\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := range maxPatients {
		wg.Add(1)
		go func() {
			doAction(professional, patients[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v patients: used time=%v seconds, throughput=%v action/second\n",
		maxPatients, usedTime.Seconds(), float64(maxPatients*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndInt(min, max int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	return min + rnd.Intn(max-min+1)
}

func doAction(professional models.User, patient models.Patient) {
	actions := []func(){
		genRegisterReadingAction(professional, patient),
		genGetAlertsAction(professional, patient),
		genRegisterReadingAction(professional, patient),
	}
	for _, action := range actions {
		action()
		fmt.Printf("\rexecuted action for patient %v", patient.ID)
		time.Sleep(time.Duration(100+rndInt(0, 1000)) * time.Millisecond)
	}
}

func randomReading() map[string]any {
	return map[string]any{
		"temperature_c":         rndFloat64(35.0, 40.0, 1),
		"blood_pressure":        fmt.Sprintf("%d/%d", rndInt(90, 180), rndInt(60, 110)),
		"heart_rate_bpm":        rndInt(45, 140),
		"oxygen_saturation_pct": rndInt(85, 100),
	}
}

func httpRequest(method, url string, actor models.User, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonData)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tmHttp.HeaderUserID, fmt.Sprint(actor.ID))
	req.Header.Set(tmHttp.HeaderUserRole, string(actor.Role))
	return http.DefaultClient.Do(req)
}

func grpcContext(actor models.User) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(),
		tmGrpc.MetadataUserID, fmt.Sprint(actor.ID),
		tmGrpc.MetadataUserRole, string(actor.Role),
	)
}

func genRegisterReadingAction(actor models.User, patient models.Patient) func() {
	return func() {
		reading := randomReading()

		if flipCoin() {
			resp, err := httpRequest(http.MethodPost, fmt.Sprintf("http://%s/patients/%d/readings", httpHostPort, patient.ID), actor, reading)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				fmt.Printf("\nresponse status code != 201: %v\n", resp.Status)
			}
		} else {
			reading["patient_id"] = patient.ID
			payload, err := structpb.NewStruct(reading)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			resp, err := grpcClient.RegisterReading(grpcContext(actor), payload)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if success, message := tmGrpc.StatusOf(resp); !success {
				fmt.Printf("\nresponse success = false: %v\n", message)
			}
		}
	}
}

func genGetAlertsAction(actor models.User, patient models.Patient) func() {
	return func() {
		if flipCoin() {
			resp, err := httpRequest(http.MethodGet, fmt.Sprintf("http://%s/patients/%d/alerts", httpHostPort, patient.ID), actor, nil)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
			}
		} else {
			payload, _ := structpb.NewStruct(map[string]any{"patient_id": patient.ID})
			resp, err := grpcClient.GetAlerts(grpcContext(actor), payload)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if success, message := tmGrpc.StatusOf(resp); !success {
				fmt.Printf("\nresponse success = false: %v\n", message)
			}
		}
	}
}
