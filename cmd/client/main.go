package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const serverPort = 3000

// registrationResponse is the body of a successful registration.
type registrationResponse struct {
	Message   string `json:"message"`
	Id        int64  `json:"id"`
	EmailSent bool   `json:"emailSent"`
}

// emailCounter makes every registration email unique; the patients table has
// a unique constraint on the email column.
var emailCounter int64

// runPrefix distinguishes the emails of separate client runs.
var runPrefix = time.Now().UnixNano()

// Usage example on the command line:
// > go run main.go
//
// The client measures the average request duration in microseconds for each
// operation of the patients API.
func main() {
	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{1000, 5000, 10000, 50000, 100000}
	for _, loops := range sizes {
		firstID, _ := sendPostRequest()
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				_, d := sendPostRequest()
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id int64) int64 {
				form := url.Values{
					"name":  {"Marcus Antonius"},
					"email": {fmt.Sprintf("marcus-%d-%d@example.com", runPrefix, id)},
					"phone": {"+39 999 777 555"},
				}
				return sendIdRequest(id, http.MethodPut,
					"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			}
			callInLoop(firstID, loops, f)
		}
		{
			// GET requests
			f := func(id int64) int64 {
				return sendIdRequest(id, http.MethodGet, "", nil)
			}
			callInLoop(firstID, loops, f)
		}
		{
			// DELETE requests
			f := func(id int64) int64 {
				return sendIdRequest(id, http.MethodDelete, "", nil)
			}
			callInLoop(firstID, loops, f)
		}
		sendIdRequest(firstID, http.MethodDelete, "", nil)
		fmt.Println()
	}
}

func callInLoop(firstID int64, loops int, f func(id int64) int64) {
	ids := createRandomSliceWithIDs(firstID+1, loops)
	var duration int64
	for _, id := range ids {
		d := f(id)
		duration += d
	}
	fmt.Printf("%10d", duration/int64(loops*1000))
}

func createRandomSliceWithIDs(firstID int64, loops int) []int64 {
	ids := make([]int64, 0, loops)
	for i := 0; i < loops; i++ {
		ids = append(ids, firstID+int64(i))
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

func sendPostRequest() (int64, int64) {
	emailCounter++
	jsonBody := fmt.Sprintf(`{
		"name": "Marcus Antonius",
		"email": "antonius-%d-%d@example.com",
		"phone": "+39 999 777 555"
	}`, runPrefix, emailCounter)
	requestURL := fmt.Sprintf("http://localhost:%d/api/patients/test", serverPort)
	resBody, duration := sendRequest(http.MethodPost, requestURL, "application/json", strings.NewReader(jsonBody))
	var registered registrationResponse
	err := json.Unmarshal(resBody, &registered)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return registered.Id, duration
}

func sendIdRequest(id int64, method string, contentType string, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/api/patients/%d", serverPort, id)
	_, duration := sendRequest(method, requestURL, contentType, bodyReader)
	return duration
}

func sendRequest(method string, requestURL string, contentType string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
