// upload_dataset.go: standalone script to upload a menu CSV to a running menuscore API.
//
// Usage:
//
//	go run scripts/upload_dataset.go -csv data/fastfood.csv -api http://localhost:8700 -token $MENUSCORE_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
	"github.com/MikeSquared-Agency/Menuscore/internal/store"
)

func main() {
	csvPath := flag.String("csv", "data/fastfood.csv", "path to the menu CSV")
	apiURL := flag.String("api", "http://localhost:8700", "menuscore API base URL")
	token := flag.String("token", os.Getenv("MENUSCORE_ADMIN_TOKEN"), "admin bearer token")
	clientID := flag.String("client", "upload-script", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "parse locally and print a summary without uploading")
	flag.Parse()

	data, err := os.ReadFile(*csvPath)
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}

	// Validate locally first so a bad header fails fast with the same message
	// the API would return.
	records, err := nutrition.Parse(string(data))
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}

	if *dryRun {
		fmt.Printf("%s: %d items across %d restaurants\n",
			filepath.Base(*csvPath), len(records), store.CountRestaurants(records))
		return
	}

	endpoint := *apiURL + "/api/v1/datasets?source=" + url.QueryEscape(filepath.Base(*csvPath))
	req, err := http.NewRequest("POST", endpoint, bytes.NewReader(data))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("X-Client-ID", *clientID)
	if *token != "" {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("upload rejected: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var ds store.Dataset
	if err := json.Unmarshal(body, &ds); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	log.Printf("done: dataset %s with %d items across %d restaurants", ds.ID, ds.ItemCount, ds.Restaurants)
}
