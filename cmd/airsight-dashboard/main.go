// Command airsight-dashboard is a terminal client for the AirSight API. It
// drives the view coordinator through a short session: pick a model, pick a
// date, and print the rendered payload for each selection.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/fetch"
	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/view"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "AirSight API base URL")
	dateStr := flag.String("date", "", "date to inspect (YYYY-MM-DD, default today)")
	modelStr := flag.String("model", string(aqi.BestModel), "prediction model")
	timeout := flag.Duration("timeout", 5*time.Second, "per-load timeout")
	flag.Parse()

	httpClient := &http.Client{Timeout: *timeout}
	client := fetch.NewClient(httpClient, *apiURL)
	renderer := &view.TextRenderer{Out: os.Stdout}

	coord := view.New(client, renderer,
		view.WithTimeout(*timeout),
		view.WithWarningHandler(func(msg string) {
			fmt.Fprintln(os.Stderr, "warning: "+msg)
		}),
	)

	if err := coord.SelectModel(aqi.Model(*modelStr)); err != nil {
		log.Fatalf("select model: %v", err)
	}

	if *dateStr != "" {
		date, err := time.Parse(aqi.DateLayout, *dateStr)
		if err != nil {
			log.Fatalf("invalid -date: %v", err)
		}
		fmt.Println()
		if err := coord.SelectDate(date); err != nil {
			log.Fatalf("select date: %v", err)
		}
	}

	st := coord.State()
	fmt.Printf("\nsession %s: %s via %s\n",
		coord.SessionID(), st.SelectedDate.Format(aqi.DateLayout), st.SelectedModel)
}
