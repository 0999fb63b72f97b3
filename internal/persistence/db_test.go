package persistence

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/avolkov/imperium/internal/engine"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/kpi"
	"github.com/avolkov/imperium/internal/realm"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "campaign.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBlobRoundTrip(t *testing.T) {
	db := openTestDB(t)
	payload := bytes.Repeat([]byte(`{"quarter":3,"regions":["north","south"]}`), 50)

	if err := db.WriteBlob("latest", payload); err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	got, err := db.ReadBlob("latest")
	if err != nil {
		t.Fatalf("ReadBlob: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("blob changed across the round trip")
	}

	// Same name replaces, not appends.
	if err := db.WriteBlob("latest", []byte("v2")); err != nil {
		t.Fatalf("WriteBlob replace: %v", err)
	}
	got, err = db.ReadBlob("latest")
	if err != nil {
		t.Fatalf("ReadBlob after replace: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("blob = %q", got)
	}
}

func TestBlobCompressedAtRest(t *testing.T) {
	db := openTestDB(t)
	payload := bytes.Repeat([]byte("imperium"), 4096)
	if err := db.WriteBlob("big", payload); err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	var stored, rawSize int
	if err := db.conn.QueryRow("SELECT length(data), raw_size FROM snapshots WHERE name = 'big'").Scan(&stored, &rawSize); err != nil {
		t.Fatalf("query: %v", err)
	}
	if rawSize != len(payload) {
		t.Fatalf("raw_size = %d, want %d", rawSize, len(payload))
	}
	if stored >= len(payload) {
		t.Fatalf("stored %d bytes, repetitive payload should compress below %d", stored, len(payload))
	}
}

func TestReadBlobMissing(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.ReadBlob("absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestInterventionLogRoundTrip(t *testing.T) {
	db := openTestDB(t)
	entries := []engine.InterventionLogEntry{
		{
			ID: "a1", Quarter: 2, Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC),
			EventID: "regional_unrest:north", Status: events.OutcomeResolved,
			SelectedOptionID: "negotiate", ResolutionMode: events.ResolvedByCouncil,
			Note: "council pick",
		},
		{
			ID: "a2", Quarter: 2, Timestamp: time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC),
			EventID: "treasury_crisis", Status: events.OutcomeDeferred,
			ResolutionMode: events.ResolvedByCouncil,
		},
		{
			ID: "b1", Quarter: 3, Timestamp: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			EventID: "open_revolt:south", Status: events.OutcomeFailed,
			ResolutionMode: events.ResolvedByPlayer, Note: "timed out",
		},
	}
	for _, e := range entries {
		if err := db.AppendIntervention(e); err != nil {
			t.Fatalf("AppendIntervention %s: %v", e.ID, err)
		}
	}

	q2, err := db.InterventionsForQuarter(2)
	if err != nil {
		t.Fatalf("InterventionsForQuarter: %v", err)
	}
	if len(q2) != 2 {
		t.Fatalf("quarter 2 entries = %d", len(q2))
	}
	if q2[0].ID != "a1" || q2[1].ID != "a2" {
		t.Fatalf("order = %s, %s", q2[0].ID, q2[1].ID)
	}
	got := q2[0]
	want := entries[0]
	if got.EventID != want.EventID || got.Status != want.Status ||
		got.SelectedOptionID != want.SelectedOptionID ||
		got.ResolutionMode != want.ResolutionMode || got.Note != want.Note {
		t.Fatalf("entry = %+v, want %+v", got, want)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, want.Timestamp)
	}

	// Replaying the same entry id upserts instead of duplicating.
	if err := db.AppendIntervention(entries[0]); err != nil {
		t.Fatalf("replay: %v", err)
	}
	q2, err = db.InterventionsForQuarter(2)
	if err != nil {
		t.Fatalf("InterventionsForQuarter: %v", err)
	}
	if len(q2) != 2 {
		t.Fatalf("after replay quarter 2 entries = %d", len(q2))
	}

	empty, err := db.InterventionsForQuarter(9)
	if err != nil {
		t.Fatalf("InterventionsForQuarter empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("quarter 9 entries = %d", len(empty))
	}
}

func TestReportRoundTrip(t *testing.T) {
	db := openTestDB(t)
	report := engine.QuarterlyReport{
		Quarter:     4,
		TotalIncome: realm.ResourcePool{Gold: 120, Labor: 10},
		TotalSpend:  96,
		Treasury:    realm.ResourcePool{Gold: 524},
		Expenses:    map[realm.Department]float64{realm.DeptMilitary: 40, realm.DeptEconomy: 56},
		KPI: kpi.Report{
			Stability: kpi.Entry{Value: 61.5, ThreatLevel: kpi.ThreatLow},
		},
		ControlMode: engine.ControlAdvisor,
	}
	if err := db.SaveReport(report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	got, err := db.LoadReport(4)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if got.Quarter != 4 || got.TotalSpend != 96 || got.Treasury.Gold != 524 {
		t.Fatalf("report = %+v", got)
	}
	if got.Expenses[realm.DeptMilitary] != 40 {
		t.Fatalf("expenses = %v", got.Expenses)
	}
	if got.KPI.Stability.Value != 61.5 || got.ControlMode != engine.ControlAdvisor {
		t.Fatalf("kpi/mode = %+v/%s", got.KPI.Stability, got.ControlMode)
	}

	if _, err := db.LoadReport(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing report err = %v, want ErrNotFound", err)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("campaign", "border-march"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := db.SaveMeta("campaign", "border-march-2"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}
	got, err := db.GetMeta("campaign")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "border-march-2" {
		t.Fatalf("meta = %q", got)
	}
	if _, err := db.GetMeta("absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campaign.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.WriteBlob("latest", []byte("persisted")); err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()
	got, err := db2.ReadBlob("latest")
	if err != nil {
		t.Fatalf("ReadBlob: %v", err)
	}
	if string(got) != "persisted" {
		t.Fatalf("blob = %q", got)
	}
}
