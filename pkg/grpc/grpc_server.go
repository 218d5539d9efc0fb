package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"
)

const (
	MetadataUserID    = "x-user-id"
	MetadataUserRole  = "x-user-role"
	MetadataRequestID = "x-request-id"
)

var ErrNoActor = errors.New("missing or invalid x-user-id / x-user-role metadata")

type MonitoringServer struct {
	Monitor          *monitor.Monitor
	RateLimiterStore *monitor.RateLimiterStore
}

func (s *MonitoringServer) GetLimiter(actor string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(actor)
	}
}

func (s *MonitoringServer) CheckActorLimiter(actor string) bool {
	limiter := s.GetLimiter(actor)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

type Actor struct {
	UserID uint
	Role   models.UserRole
}

func firstMetadata(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// ActorFromContext reads the caller identity set by the auth gateway.
func ActorFromContext(ctx context.Context) (Actor, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Actor{}, ErrNoActor
	}
	userID, err := strconv.ParseUint(firstMetadata(md, MetadataUserID), 10, 0)
	if err != nil || userID == 0 {
		return Actor{}, ErrNoActor
	}
	role := models.UserRole(strings.ToLower(firstMetadata(md, MetadataUserRole)))
	if !models.ValidRole(role) {
		return Actor{}, ErrNoActor
	}
	return Actor{UserID: uint(userID), Role: role}, nil
}

func requestIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if id := firstMetadata(md, MetadataRequestID); id != "" {
			return id
		}
	}
	return monitor.NewID()
}

// decodePayload maps a Struct onto a request type through its json tags.
func decodePayload(in *structpb.Struct, dest any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func toValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func statusValue(success bool, message string) map[string]any {
	return map[string]any{"success": success, "message": message}
}

// reply builds {status, ...fields}; fields are converted through their json form.
func reply(success bool, message string, fields map[string]any) (*structpb.Struct, error) {
	out := map[string]any{"status": statusValue(success, message)}
	for k, v := range fields {
		converted, err := toValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = converted
	}
	return structpb.NewStruct(out)
}

func failure(message string) (*structpb.Struct, error) {
	return reply(false, message, nil)
}

// StatusOf extracts {success, message} from a response.
func StatusOf(resp *structpb.Struct) (bool, string) {
	st := resp.GetFields()["status"].GetStructValue()
	return st.GetFields()["success"].GetBoolValue(), st.GetFields()["message"].GetStringValue()
}
