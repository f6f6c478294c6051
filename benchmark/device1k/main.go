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
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	helmetGrpc "github.com/chantelleNokue/smart-helmet-backend/pkg/grpc"
)

var maxHelmets int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *helmetGrpc.DeviceGatewayClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	helmetIDs := make([]string, maxHelmets)
	for i := range maxHelmets {
		helmetIDs[i] = "HLM-" + uuid.NewString()[:8]
	}
	fmt.Printf("generated %v helmet IDs\n", maxHelmets)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = helmetGrpc.NewDeviceGatewayClient(conn)

	fmt.Printf("gRPC client ready\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxHelmets {
		wg.Add(1)
		go func() {
			insertConfig(helmetIDs[i])
			fmt.Printf("\rinserted config for helmet %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted config for %v helmets: used time=%v seconds, throughput=%v action/second\n",
		maxHelmets, usedTime.Seconds(), float64(maxHelmets)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxHelmets {
		wg.Add(1)
		go func() {
			doAction(helmetIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v helmets: used time=%v seconds, throughput=%v action/second\n",
		maxHelmets, usedTime.Seconds(), float64(maxHelmets*3)/usedTime.Seconds(),
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

func postJSON(url string, payload any) {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusTooManyRequests {
		fmt.Printf("\nunexpected status %v from %s\n", resp.StatusCode, url)
	}
}

func insertConfig(helmetID string) {
	postJSON(fmt.Sprintf("http://%s/api/v1/helmets/%s/config", httpHostPort, helmetID), map[string]float64{
		"temperatureThreshold": rndFloat64(30.0, 45.0, 1),
		"humidityThreshold":    rndFloat64(60.0, 90.0, 1),
		"gasThreshold":         rndFloat64(200.0, 600.0, 0),
	})
}

func doAction(helmetID string) {
	actions := []func(){
		genUpsertConfigAction(helmetID),
		genGetAssignmentAction(helmetID),
		genPostReadingAction(helmetID),
	}
	actionNames := []string{
		"UpsertConfig",
		"GetAssignment",
		"PostReading",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for helmet %v", actionNames[index], helmetID)
		time.Sleep(time.Duration(100+rndFloat64(0, 1000, 0)) * time.Millisecond)
	}
}

func genUpsertConfigAction(helmetID string) func() {
	return func() {
		insertConfig(helmetID)
	}
}

func genPostReadingAction(helmetID string) func() {
	return func() {
		reading := map[string]any{
			"timestamp":   float64(time.Now().Unix()),
			"temperature": rndFloat64(20.0, 45.0, 1),
			"humidity":    rndFloat64(30.0, 95.0, 1),
			"gasLevel":    rndFloat64(50.0, 700.0, 0),
			"location":    "Shaft 3",
		}

		if flipCoin() {
			postJSON(fmt.Sprintf("http://%s/api/v1/helmets/%s/sensor-data", httpHostPort, helmetID), reading)
			return
		}

		req, err := structpb.NewStruct(map[string]any{"helmetId": helmetID, "reading": reading})
		if err != nil {
			panic(err)
		}
		resp, err := grpcClient.PostReading(context.Background(), req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if !resp.GetFields()["success"].GetBoolValue() {
			fmt.Printf("\nresponse success = false: %v\n", resp)
		}
	}
}

func genGetAssignmentAction(helmetID string) func() {
	return func() {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/api/v1/esp32/assignment/%s", httpHostPort, helmetID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp)
			}
			return
		}

		req, _ := structpb.NewStruct(map[string]any{"helmetId": helmetID})
		resp, err := grpcClient.GetAssignment(context.Background(), req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if !resp.GetFields()["success"].GetBoolValue() {
			fmt.Printf("\nresponse success = false: %v\n", resp)
		}
	}
}
