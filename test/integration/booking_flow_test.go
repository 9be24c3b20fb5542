package integrationtests

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"dmaxcricket/pkg/model"
	"dmaxcricket/test/integration/common"
	"dmaxcricket/test/testutil"

	"go.mongodb.org/mongo-driver/bson"
)

// The suite runs against a live server and its MongoDB, both addressed
// through env vars. The server must point at the same database and have been
// migrated, so the pricing seed and unique indexes are in place.
//
//	TEST_SERVER_URL   e.g. http://localhost:8080 (suite skips when unset)
//	TEST_MONGO_URI    defaults to mongodb://localhost:27017
//	TEST_MONGO_DB     defaults to dmaxcricket_test

const sessionID = "integration-session-0001"

func setupSuite(t *testing.T) (*testutil.Client, *common.MongoHelper) {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration suite")
	}

	mongoHelper := common.NewMongoHelper(t, os.Getenv("TEST_MONGO_URI"), os.Getenv("TEST_MONGO_DB"))
	mongoHelper.CleanBookingData(t)
	t.Cleanup(func() { mongoHelper.Close(t) })

	return testutil.NewClient(serverURL, sessionID), mongoHelper
}

// nextWeekday returns the next date on or after tomorrow that is neither
// Saturday nor Sunday, keeping the hourly pricing path deterministic.
func nextWeekday() string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestBookingFlow(t *testing.T) {
	client, mongoHelper := setupSuite(t)
	date := nextWeekday()

	resp := client.POST(t, "/api/v1/slots/generate", map[string]any{
		"date":        date,
		"range_start": "06:00",
		"range_end":   "10:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate: expected 201, got %d: %s", resp.StatusCode, resp.Body)
	}

	var schedule []model.SlotAvailability
	resp = client.GET(t, "/api/v1/slots?date="+date)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("schedule: expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	resp.Data(t, &schedule)
	if len(schedule) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(schedule))
	}
	for _, s := range schedule {
		if s.Taken {
			t.Fatalf("slot %s should start free", s.StartTime)
		}
	}

	// Hold 06:00 and 07:00 for this session.
	for _, s := range schedule[:2] {
		resp = client.POST(t, "/api/v1/slots/id/"+s.ID+"/lock", map[string]any{
			"session_id": sessionID,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("lock %s: expected 200, got %d: %s", s.StartTime, resp.StatusCode, resp.Body)
		}
	}

	// A second visitor must not get the held slot.
	rival := testutil.NewClient(client.BaseURL, "integration-session-0002")
	resp = rival.POST(t, "/api/v1/slots/id/"+schedule[0].ID+"/lock", map[string]any{
		"session_id": "integration-session-0002",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("rival lock: expected 409, got %d: %s", resp.StatusCode, resp.Body)
	}

	var window struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
	}
	resp = client.POST(t, "/api/v1/payments/window", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payment window: expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	resp.Data(t, &window)
	if window.Token == "" {
		t.Fatal("payment window returned an empty token")
	}

	var proof struct {
		ProofRef string `json:"proof_ref"`
	}
	resp = client.POSTMultipart(t, "/api/v1/payments/proof", "proof", "receipt.png", []byte("not really a png"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("proof upload: expected 201, got %d: %s", resp.StatusCode, resp.Body)
	}
	resp.Data(t, &proof)

	var group model.BookingGroup
	resp = client.POST(t, "/api/v1/bookings", map[string]any{
		"session_id":    sessionID,
		"name":          "Integration Tester",
		"phone":         "9876543210",
		"email":         "tester@example.com",
		"date":          date,
		"start_time":    "06:00",
		"end_time":      "08:00",
		"amount":        1600,
		"proof_ref":     proof.ProofRef,
		"payment_token": window.Token,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", resp.StatusCode, resp.Body)
	}
	resp.Data(t, &group)
	if group.SlotCount != 2 || group.TotalPaid != 1600 {
		t.Fatalf("unexpected group: %+v", group)
	}

	rows := mongoHelper.CountDocuments(t, common.BookingsCollection, bson.M{"proof_ref": proof.ProofRef})
	if rows != 2 {
		t.Fatalf("expected 2 booking rows, got %d", rows)
	}
	locks := mongoHelper.CountDocuments(t, common.SlotLocksCollection, nil)
	if locks != 0 {
		t.Fatalf("expected locks released after submit, %d remain", locks)
	}

	// Replaying the submit must not double-book: the token is single-window
	// but the slots are now taken, so the conflict path wins first.
	resp = client.POST(t, "/api/v1/bookings", map[string]any{
		"session_id":    sessionID,
		"name":          "Integration Tester",
		"phone":         "9876543210",
		"email":         "tester@example.com",
		"date":          date,
		"start_time":    "06:00",
		"end_time":      "08:00",
		"amount":        1600,
		"proof_ref":     proof.ProofRef,
		"payment_token": window.Token,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("replayed submit: expected 409, got %d: %s", resp.StatusCode, resp.Body)
	}

	var row model.Booking
	if err := mongoHelper.GetCollection(common.BookingsCollection).
		FindOne(context.Background(), bson.M{"proof_ref": proof.ProofRef}).
		Decode(&row); err != nil {
		t.Fatalf("failed to load booking row: %v", err)
	}

	resp = client.POST(t, "/api/v1/bookings/id/"+row.ID+"/approve", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	resp.Data(t, &group)
	if group.Status != model.BookingStatusConfirmed {
		t.Fatalf("expected confirmed group, got %s", group.Status)
	}
	if group.StartTime != "06:00" || group.EndTime != "08:00" {
		t.Fatalf("unexpected group window: %s-%s", group.StartTime, group.EndTime)
	}

	confirmed := mongoHelper.CountDocuments(t, common.BookingsCollection, bson.M{
		"proof_ref": proof.ProofRef,
		"status":    model.BookingStatusConfirmed,
	})
	if confirmed != 2 {
		t.Fatalf("expected both rows confirmed, got %d", confirmed)
	}
}

func TestRejectFreesSlots(t *testing.T) {
	client, mongoHelper := setupSuite(t)
	date := nextWeekday()

	resp := client.POST(t, "/api/v1/slots/generate", map[string]any{
		"date":        date,
		"range_start": "18:00",
		"range_end":   "19:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate: expected 201, got %d: %s", resp.StatusCode, resp.Body)
	}

	var schedule []model.SlotAvailability
	resp = client.GET(t, "/api/v1/slots?date="+date)
	resp.Data(t, &schedule)
	if len(schedule) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(schedule))
	}
	slotID := schedule[0].ID

	resp = client.POST(t, "/api/v1/slots/id/"+slotID+"/lock", map[string]any{
		"session_id": sessionID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lock: expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	var window struct {
		Token string `json:"token"`
	}
	resp = client.POST(t, "/api/v1/payments/window", map[string]any{})
	resp.Data(t, &window)

	var proof struct {
		ProofRef string `json:"proof_ref"`
	}
	resp = client.POSTMultipart(t, "/api/v1/payments/proof", "proof", "receipt.jpg", []byte("jpeg bytes"))
	resp.Data(t, &proof)

	resp = client.POST(t, "/api/v1/bookings", map[string]any{
		"session_id":    sessionID,
		"name":          "Integration Tester",
		"phone":         "9876501234",
		"email":         "tester@example.com",
		"date":          date,
		"start_time":    "18:00",
		"end_time":      "19:00",
		"amount":        800,
		"proof_ref":     proof.ProofRef,
		"payment_token": window.Token,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", resp.StatusCode, resp.Body)
	}

	var row model.Booking
	if err := mongoHelper.GetCollection(common.BookingsCollection).
		FindOne(context.Background(), bson.M{"proof_ref": proof.ProofRef}).
		Decode(&row); err != nil {
		t.Fatalf("failed to load booking row: %v", err)
	}

	resp = client.POST(t, "/api/v1/bookings/id/"+row.ID+"/reject", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reject: expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	// Rejected rows stop counting as booked, so the slot shows free again.
	resp = client.GET(t, "/api/v1/slots?date="+date)
	resp.Data(t, &schedule)
	if schedule[0].Taken {
		t.Fatal("slot should be free again after rejection")
	}
}
