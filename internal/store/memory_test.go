package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

func payload(aqiValue int) aqi.PredictionData {
	return aqi.PredictionData{
		OverallAQI:    aqiValue,
		AQICategory:   aqi.CategoryForAQI(aqiValue),
		SelectedModel: aqi.BestModel,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(10, time.Hour)

	if _, ok := s.Get("2025-08-01|gradient_boosting"); ok {
		t.Fatal("empty store should miss")
	}

	s.Put("2025-08-01|gradient_boosting", payload(42))
	got, ok := s.Get("2025-08-01|gradient_boosting")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.OverallAQI != 42 {
		t.Fatalf("got AQI %d, want 42", got.OverallAQI)
	}
}

func TestMemoryStoreCountRetention(t *testing.T) {
	s := NewMemoryStore(2, 0)

	for i := 1; i <= 3; i++ {
		s.Put(fmt.Sprintf("key-%d", i), payload(i))
	}

	if s.Len() != 2 {
		t.Fatalf("want 2 entries after eviction, got %d", s.Len())
	}
	if _, ok := s.Get("key-1"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	if _, ok := s.Get("key-3"); !ok {
		t.Fatal("newest entry should survive")
	}
}

func TestMemoryStoreOverwriteKeepsOneEntry(t *testing.T) {
	s := NewMemoryStore(5, 0)

	s.Put("key", payload(10))
	s.Put("key", payload(20))

	if s.Len() != 1 {
		t.Fatalf("overwrite should not duplicate, got %d entries", s.Len())
	}
	got, _ := s.Get("key")
	if got.OverallAQI != 20 {
		t.Fatalf("want latest value 20, got %d", got.OverallAQI)
	}
}

func TestMemoryStoreAgeRetention(t *testing.T) {
	s := NewMemoryStore(10, time.Millisecond)

	s.Put("key", payload(30))
	time.Sleep(5 * time.Millisecond)

	if _, ok := s.Get("key"); ok {
		t.Fatal("stale entry should miss")
	}
}
