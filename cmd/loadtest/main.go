package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"io"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var URL, _ = os.LookupEnv("API_URL")
var PORT, _ = os.LookupEnv("API_PORT")
var apiURL = fmt.Sprintf("http://%s:%s/api/v1", URL, PORT)

const (
	transactions = 50
	approvers    = 10
	startBalance = "1000.00"
)

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	token := login(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))
	merchantID := createMerchant(token)

	expected := decimal.RequireFromString(startBalance)
	ids := make([]string, 0, transactions)
	for i := 0; i < transactions; i++ {
		amount := decimal.NewFromFloat(rand.Float64()*1000 + 1).Round(2)
		ids = append(ids, createTransaction(token, merchantID, amount))
		expected = expected.Add(amount)
	}

	var approved, rejected atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()
	for _, id := range ids {
		for j := 0; j < approvers; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				status, _ := call(token, http.MethodPost, "/transactions/"+id+"/approve", nil, nil)
				if status == http.StatusOK {
					approved.Add(1)
				} else {
					rejected.Add(1)
				}
			}(id)
		}
	}
	wg.Wait()

	_, body := call(token, http.MethodGet, "/merchants/"+merchantID, nil, nil)
	balance := decimal.RequireFromString(gjson.GetBytes(body, "data.balance").String())

	fmt.Printf("approve calls: %d ok, %d rejected in %s\n", approved.Load(), rejected.Load(), time.Since(start))
	fmt.Printf("merchant balance: %s, expected: %s\n", balance.StringFixed(2), expected.StringFixed(2))
	if approved.Load() != transactions || !balance.Equal(expected) {
		fmt.Println("FAIL: balance does not reflect exactly one credit per transaction")
		os.Exit(1)
	}
	fmt.Println("OK")
}

func login(email, password string) string {
	status, body := call("", http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, nil)
	mustStatus(status, http.StatusOK, body)
	return gjson.GetBytes(body, "data.token").String()
}

func createMerchant(token string) string {
	suffix := uuid.NewString()
	status, body := call(token, http.MethodPost, "/users", map[string]string{
		"name":            "Load Test",
		"email":           "loadtest-" + suffix + "@example.com",
		"role":            "merchant",
		"password":        "loadtest",
		"confirmPassword": "loadtest",
	}, nil)
	mustStatus(status, http.StatusCreated, body)
	userID := gjson.GetBytes(body, "data.id").String()

	status, body = call(token, http.MethodPost, "/merchants", map[string]string{
		"userId":   userID,
		"name":     "loadtest-" + suffix,
		"currency": "USD",
		"balance":  startBalance,
	}, nil)
	mustStatus(status, http.StatusCreated, body)
	return gjson.GetBytes(body, "data.id").String()
}

func createTransaction(token, merchantID string, amount decimal.Decimal) string {
	status, body := call(token, http.MethodPost, "/transactions", map[string]string{
		"merchantId":     merchantID,
		"amount":         amount.StringFixed(2),
		"currency":       "USD",
		"cardHolderName": "Load Test",
		"cardNumber":     "4111111111111111",
		"expiry":         time.Now().AddDate(2, 0, 0).Format("01/06"),
		"csv":            "123",
	}, map[string]string{"Idempotency-Key": uuid.NewString()})
	mustStatus(status, http.StatusCreated, body)
	return gjson.GetBytes(body, "data.id").String()
}

func call(token, method, path string, payload interface{}, headers map[string]string) (int, []byte) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Println("Error encoding request:", err)
			os.Exit(1)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiURL+path, reader)
	if err != nil {
		fmt.Println("Error building request:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("Error sending request:", err)
		return 0, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func mustStatus(got, want int, body []byte) {
	if got != want {
		fmt.Printf("Wrong status code: %d, body: %s\n", got, body)
		os.Exit(1)
	}
}
