package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

var sampleCSV = []byte(`region,amount,signup_date
North,120.5,2024-01-05
South,80,2024-01-05
North,95.25,2024-01-06
East,60,2024-01-07
North,110,2024-01-07
`)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, agent calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadSample() (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "sales.csv")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(sampleCSV); err != nil {
		return "", err
	}
	writer.Close()

	resp, err := http.Post(baseURL+"/dataset/v1/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	color.Green("Status: %s", resp.Status)
	prettyPrint(respBody)

	var parsed struct {
		Data struct {
			SessionId string `json:"session_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	return parsed.Data.SessionId, nil
}

func main() {
	color.Cyan("🚀 Starting Dataset Charts API Test\n")

	// 1. Health
	color.Yellow("\n1. Health Probe")
	resp, body, err := sendRequest("GET", "/health/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. Upload
	color.Yellow("\n2. Upload Sample CSV")
	sessionId, err := uploadSample()
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Session: %s", sessionId)

	// 3. Manual chart command via chat
	color.Yellow("\n3. Chat Command: bar chart")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]string{
		"session_id": sessionId,
		"message":    "show me a bar chart",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Grouped manual build
	color.Yellow("\n4. Manual Build: mean amount by region")
	resp, body, err = sendRequest("POST", "/chart/v1/manual", map[string]string{
		"session_id": sessionId,
		"chart_type": "bar",
		"group_by":   "region",
		"value":      "amount",
		"agg":        "mean",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 5. Free-form chat (requires a configured LLM provider)
	color.Yellow("\n5. Free-form Chat (agent)")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]string{
		"session_id": sessionId,
		"message":    "what insights can you find in this data?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n✅ Done")
}
