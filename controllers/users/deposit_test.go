package users

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marinsprosper/minha-plataforma/models"

	"github.com/gorilla/mux"
)

const testWallet = "VJLUserWallet123456789abc"

// fakeProvider stands in for the PIX provider and counts how often the
// deposit-creation endpoint was actually hit.
func fakeProvider(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	n := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/deposit":
			n++
			if calls != nil {
				*calls = n
			}
			fmt.Fprintf(w, `{"response":{"id":"dep_%d","qrCopyPaste":"000201qr","qrImageUrl":"https://img/qr.png"}}`, n)
		case "/deposit-status":
			fmt.Fprint(w, `{"response":{"status":"depix_sent","bankTxId":"E555"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("EULEN_BASE_URL", srv.URL)
	t.Setenv("EULEN_API_TOKEN", "tok")
	return srv
}

func TestCreateDepositSnapshotsCommission(t *testing.T) {
	db := setupTest(t)
	t.Setenv("PLATFORM_DEPIX_ADDRESS", "VJLPlatform123456789abcd")
	fakeProvider(t, nil)
	u := createUser(t, db, "ana@example.com", testWallet)

	rec := httptest.NewRecorder()
	CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", `{"amount_brl":"1.234,56"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var dep models.Deposit
	if err := db.First(&dep, "id = ?", "dep_1").Error; err != nil {
		t.Fatalf("depósito não persistido: %v", err)
	}
	if dep.AmountInCents != 123456 || dep.CommissionBps != 250 {
		t.Fatalf("amount=%d bps=%d", dep.AmountInCents, dep.CommissionBps)
	}
	if dep.FeeInCents != 3086 || dep.NetInCents != 120370 {
		t.Fatalf("fee=%d net=%d", dep.FeeInCents, dep.NetInCents)
	}
	if dep.UserDepixAddress != testWallet || dep.PlatformDepixAddress == "" {
		t.Fatalf("endereços não copiados: %+v", dep)
	}

	// Raising the global default afterwards must not rewrite the row.
	if err := models.SetDefaultCommissionBps(db, 500); err != nil {
		t.Fatal(err)
	}
	var again models.Deposit
	db.First(&again, "id = ?", "dep_1")
	if again.CommissionBps != 250 {
		t.Fatalf("commission rewritten to %d", again.CommissionBps)
	}
}

func TestCreateDepositUsesUserOverride(t *testing.T) {
	db := setupTest(t)
	t.Setenv("PLATFORM_DEPIX_ADDRESS", "VJLPlatform123456789abcd")
	fakeProvider(t, nil)

	u := createUser(t, db, "ana@example.com", testWallet)
	override := 100
	db.Model(&u).Update("commission_bps", &override)

	rec := httptest.NewRecorder()
	CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", `{"amount_brl":"100,00"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var dep models.Deposit
	db.First(&dep, "id = ?", "dep_1")
	if dep.CommissionBps != 100 || dep.FeeInCents != 100 || dep.NetInCents != 9900 {
		t.Fatalf("override not applied: %+v", dep)
	}
}

func TestCreateDepositRequiresWalletBeforeProviderCall(t *testing.T) {
	db := setupTest(t)
	t.Setenv("PLATFORM_DEPIX_ADDRESS", "VJLPlatform123456789abcd")
	var calls int
	fakeProvider(t, &calls)
	u := createUser(t, db, "semcarteira@example.com", "")

	rec := httptest.NewRecorder()
	CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", `{"amount_brl":"50,00"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if calls != 0 {
		t.Fatalf("provider called %d times for a rejected request", calls)
	}

	var n int64
	db.Model(&models.Deposit{}).Count(&n)
	if n != 0 {
		t.Fatalf("deposits persisted: %d", n)
	}
}

func TestCreateDepositMissingConfig(t *testing.T) {
	db := setupTest(t)
	u := createUser(t, db, "ana@example.com", testWallet)

	// No platform address.
	rec := httptest.NewRecorder()
	CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", `{"amount_brl":"50,00"}`))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("sem endereço da plataforma: status = %d", rec.Code)
	}

	// Platform address but no provider token.
	t.Setenv("PLATFORM_DEPIX_ADDRESS", "VJLPlatform123456789abcd")
	rec = httptest.NewRecorder()
	CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", `{"amount_brl":"50,00"}`))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("sem token do provedor: status = %d", rec.Code)
	}
}

func TestCreateDepositInvalidAmount(t *testing.T) {
	db := setupTest(t)
	t.Setenv("PLATFORM_DEPIX_ADDRESS", "VJLPlatform123456789abcd")
	fakeProvider(t, nil)
	u := createUser(t, db, "ana@example.com", testWallet)

	for _, amount := range []string{"abc", "-5", "0", ""} {
		rec := httptest.NewRecorder()
		CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", fmt.Sprintf(`{"amount_brl":%q}`, amount)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("amount %q: status = %d", amount, rec.Code)
		}
	}
}

func TestCreateDepositUpstreamFailureIsNotPersisted(t *testing.T) {
	db := setupTest(t)
	t.Setenv("PLATFORM_DEPIX_ADDRESS", "VJLPlatform123456789abcd")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"manutenção"}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("EULEN_BASE_URL", srv.URL)
	t.Setenv("EULEN_API_TOKEN", "tok")

	u := createUser(t, db, "ana@example.com", testWallet)

	rec := httptest.NewRecorder()
	CreateDepositHandler(rec, authedRequest(t, u.ID, "POST", "/api/deposits", `{"amount_brl":"50,00"}`))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data, _ := resp.Data.(map[string]interface{})
	if data["upstream_status"] != float64(http.StatusServiceUnavailable) {
		t.Errorf("upstream_status = %v", data["upstream_status"])
	}

	var n int64
	db.Model(&models.Deposit{}).Count(&n)
	if n != 0 {
		t.Fatalf("deposits persisted after upstream failure: %d", n)
	}
}

func TestGetDepositUniform404(t *testing.T) {
	db := setupTest(t)
	owner := createUser(t, db, "dona@example.com", testWallet)
	other := createUser(t, db, "outra@example.com", testWallet)

	db.Create(&models.Deposit{
		ID: "dep_owned", UserID: owner.ID, AmountInCents: 100, CommissionBps: 250,
		FeeInCents: 2, NetInCents: 98,
		PlatformDepixAddress: "p", UserDepixAddress: "u", Status: "created", PayoutStatus: "not_sent",
	})

	for name, uid := range map[string]uint{"missing id": owner.ID, "not owned": other.ID} {
		target := "/api/deposits/dep_owned"
		id := "dep_owned"
		if name == "missing id" {
			target, id = "/api/deposits/nope", "nope"
		}
		req := mux.SetURLVars(authedRequest(t, uid, "GET", target, ""), map[string]string{"id": id})
		rec := httptest.NewRecorder()
		GetDepositHandler(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", name, rec.Code)
		}
	}
}

func TestGetDepositRefreshMergesProviderStatus(t *testing.T) {
	db := setupTest(t)
	fakeProvider(t, nil)
	u := createUser(t, db, "ana@example.com", testWallet)

	db.Create(&models.Deposit{
		ID: "dep_1", UserID: u.ID, AmountInCents: 100, CommissionBps: 250,
		FeeInCents: 2, NetInCents: 98,
		PlatformDepixAddress: "p", UserDepixAddress: "u", Status: "created", PayoutStatus: "not_sent",
	})

	req := mux.SetURLVars(authedRequest(t, u.ID, "GET", "/api/deposits/dep_1", ""), map[string]string{"id": "dep_1"})
	rec := httptest.NewRecorder()
	GetDepositHandler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var dep models.Deposit
	db.First(&dep, "id = ?", "dep_1")
	if dep.Status != "depix_sent" {
		t.Errorf("Status = %q, want depix_sent", dep.Status)
	}
	if dep.BankTxID == nil || *dep.BankTxID != "E555" {
		t.Errorf("BankTxID = %v", dep.BankTxID)
	}
}

func TestGetDepositSurvivesProviderOutage(t *testing.T) {
	db := setupTest(t)
	u := createUser(t, db, "ana@example.com", testWallet)

	// Point the client at a dead server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()
	t.Setenv("EULEN_BASE_URL", base)
	t.Setenv("EULEN_API_TOKEN", "tok")

	db.Create(&models.Deposit{
		ID: "dep_1", UserID: u.ID, AmountInCents: 100, CommissionBps: 250,
		FeeInCents: 2, NetInCents: 98,
		PlatformDepixAddress: "p", UserDepixAddress: "u", Status: "created", PayoutStatus: "not_sent",
	})

	req := mux.SetURLVars(authedRequest(t, u.ID, "GET", "/api/deposits/dep_1", ""), map[string]string{"id": "dep_1"})
	rec := httptest.NewRecorder()
	GetDepositHandler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite provider outage", rec.Code)
	}

	var dep models.Deposit
	db.First(&dep, "id = ?", "dep_1")
	if dep.Status != "created" {
		t.Errorf("stored status mutated: %q", dep.Status)
	}
}

func TestListDepositsScopedToUser(t *testing.T) {
	db := setupTest(t)
	a := createUser(t, db, "a@example.com", testWallet)
	b := createUser(t, db, "b@example.com", testWallet)

	for i, uid := range []uint{a.ID, a.ID, b.ID} {
		db.Create(&models.Deposit{
			ID: fmt.Sprintf("dep_%d", i), UserID: uid, AmountInCents: 100, CommissionBps: 250,
			FeeInCents: 2, NetInCents: 98,
			PlatformDepixAddress: "p", UserDepixAddress: "u", Status: "created", PayoutStatus: "not_sent",
		})
	}

	rec := httptest.NewRecorder()
	ListDepositsHandler(rec, authedRequest(t, a.ID, "GET", "/api/deposits", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	items, _ := resp.Data.([]interface{})
	if len(items) != 2 {
		t.Fatalf("user A sees %d deposits, want 2", len(items))
	}
}
