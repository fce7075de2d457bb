package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// newContext builds an echo context as the JWT middleware would leave it:
// userId/role set from the validated token.
func newContext(e *echo.Echo, method, target, body string, userID primitive.ObjectID, role string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if !userID.IsZero() {
		c.Set("userId", userID.Hex())
	}
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	e := newTestEcho()
	c, rec := newContext(e, http.MethodGet, "/health", "", primitive.NilObjectID, "")

	hc := NewHealthController("test")
	if err := hc.Health(c); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatal("response data is not an object")
	}
	if data["environment"] != "test" {
		t.Errorf("environment = %v, want test", data["environment"])
	}
	if _, ok := data["uptime"]; !ok {
		t.Error("response missing uptime")
	}
}

func TestParseSince(t *testing.T) {
	e := newTestEcho()

	tests := []struct {
		query   string
		want    *time.Time
		wantErr bool
	}{
		{"", nil, false},
		{"since=2025-06-01", timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)), false},
		{"since=2025-06-01T12:30:00Z", timePtr(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)), false},
		{"since=yesterday", nil, true},
		{"since=01/06/2025", nil, true},
	}
	for _, tt := range tests {
		c, _ := newContext(e, http.MethodGet, "/api/dashboard/admin?"+tt.query, "", primitive.NilObjectID, "")
		got, err := parseSince(c)
		if (err != nil) != tt.wantErr {
			t.Errorf("query %q: error = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if tt.want == nil && got != nil {
			t.Errorf("query %q: got %v, want nil", tt.query, got)
		}
		if tt.want != nil && (got == nil || !got.Equal(*tt.want)) {
			t.Errorf("query %q: got %v, want %v", tt.query, got, tt.want)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCreateOrderRejectsMixedLines(t *testing.T) {
	e := newTestEcho()
	body := `{
		"customerId": "` + primitive.NewObjectID().Hex() + `",
		"lines": [
			{"kind": "PLAN", "refId": "` + primitive.NewObjectID().Hex() + `", "qty": 1},
			{"kind": "ADDON", "refId": "` + primitive.NewObjectID().Hex() + `", "qty": 1}
		]
	}`
	c, rec := newContext(e, http.MethodPost, "/api/orders", body, primitive.NewObjectID(), models.RoleSalesperson)

	// Mixed kinds are rejected before any catalog access, so no database
	// is needed here.
	oc := NewOrderController(nil, 0.10)
	if err := oc.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeError(t, rec)
	if !strings.Contains(resp.Message, "mix") {
		t.Errorf("message = %q, want mixed-lines rejection", resp.Message)
	}
}

func TestCreateOrderRejectsUnknownKind(t *testing.T) {
	e := newTestEcho()
	body := `{
		"customerId": "` + primitive.NewObjectID().Hex() + `",
		"lines": [{"kind": "BUNDLE", "refId": "` + primitive.NewObjectID().Hex() + `", "qty": 1}]
	}`
	c, rec := newContext(e, http.MethodPost, "/api/orders", body, primitive.NewObjectID(), models.RoleSalesperson)

	oc := NewOrderController(nil, 0.10)
	if err := oc.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateOrderRejectsEmptyLines(t *testing.T) {
	e := newTestEcho()
	body := `{"customerId": "` + primitive.NewObjectID().Hex() + `", "lines": []}`
	c, rec := newContext(e, http.MethodPost, "/api/orders", body, primitive.NewObjectID(), models.RoleSalesperson)

	oc := NewOrderController(nil, 0.10)
	if err := oc.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDashboardScopeCrossUser(t *testing.T) {
	e := newTestEcho()
	caller := primitive.NewObjectID()
	other := primitive.NewObjectID()

	// A salesperson asking for someone else's dashboard is stopped before
	// any repository call.
	c, rec := newContext(e, http.MethodGet, "/api/dashboard/salesperson/"+other.Hex(), "", caller, models.RoleSalesperson)
	c.SetParamNames("id")
	c.SetParamValues(other.Hex())

	dc := NewDashboardController(nil)
	if err := dc.SalespersonDashboard(c); err != nil {
		t.Fatalf("SalespersonDashboard() error = %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Status != "error" {
		t.Errorf("status field = %q, want error", resp.Status)
	}
}

func TestDashboardScopeManagerCrossTeam(t *testing.T) {
	e := newTestEcho()
	caller := primitive.NewObjectID()
	other := primitive.NewObjectID()

	c, rec := newContext(e, http.MethodGet, "/api/dashboard/manager/"+other.Hex(), "", caller, models.RoleManager)
	c.SetParamNames("id")
	c.SetParamValues(other.Hex())

	dc := NewDashboardController(nil)
	if err := dc.ManagerDashboard(c); err != nil {
		t.Fatalf("ManagerDashboard() error = %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDashboardScopeAdminNeedsID(t *testing.T) {
	e := newTestEcho()

	// An admin hitting /manager without :id has no implicit subject
	c, rec := newContext(e, http.MethodGet, "/api/dashboard/manager", "", primitive.NewObjectID(), models.RoleAdmin)

	dc := NewDashboardController(nil)
	if err := dc.ManagerDashboard(c); err != nil {
		t.Fatalf("ManagerDashboard() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDashboardScopeInvalidID(t *testing.T) {
	e := newTestEcho()

	c, rec := newContext(e, http.MethodGet, "/api/dashboard/salesperson/nonsense", "", primitive.NewObjectID(), models.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("nonsense")

	dc := NewDashboardController(nil)
	if err := dc.SalespersonDashboard(c); err != nil {
		t.Fatalf("SalespersonDashboard() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetRepsManagerCrossTeam(t *testing.T) {
	e := newTestEcho()
	caller := primitive.NewObjectID()
	other := primitive.NewObjectID()

	// A manager asking for another manager's team is stopped before any
	// database access.
	c, rec := newContext(e, http.MethodGet, "/api/users/"+other.Hex()+"/reps", "", caller, models.RoleManager)
	c.SetParamNames("id")
	c.SetParamValues(other.Hex())

	uc := NewUserController(nil)
	if err := uc.GetReps(c); err != nil {
		t.Fatalf("GetReps() error = %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Status != "error" {
		t.Errorf("status field = %q, want error", resp.Status)
	}
}

func TestUpdatePlanRejectsNegativePrice(t *testing.T) {
	e := newTestEcho()
	id := primitive.NewObjectID()

	c, rec := newContext(e, http.MethodPut, "/api/plans/"+id.Hex(), `{"price": -5}`, primitive.NewObjectID(), models.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues(id.Hex())

	pc := NewPlanController(nil)
	if err := pc.UpdatePlan(c); err != nil {
		t.Fatalf("UpdatePlan() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateRequestsDistinguishAbsentFromZero(t *testing.T) {
	// Repricing a plan to 0 must be expressible, so the update DTOs use
	// pointers: absent fields decode to nil, explicit zeros do not.
	var withZero updatePlanRequest
	if err := json.Unmarshal([]byte(`{"price": 0, "description": ""}`), &withZero); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if withZero.Price == nil || *withZero.Price != 0 {
		t.Error("explicit zero price should decode to a non-nil pointer")
	}
	if withZero.Description == nil || *withZero.Description != "" {
		t.Error("explicit empty description should decode to a non-nil pointer")
	}
	if withZero.Name != nil {
		t.Error("absent name should decode to nil")
	}

	var absent updatePlanRequest
	if err := json.Unmarshal([]byte(`{"name": "Pro"}`), &absent); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if absent.Price != nil {
		t.Error("absent price should decode to nil")
	}

	var addon updateAddOnRequest
	if err := json.Unmarshal([]byte(`{"price": 0}`), &addon); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if addon.Price == nil || *addon.Price != 0 {
		t.Error("explicit zero add-on price should decode to a non-nil pointer")
	}
}

func TestDashboardMissingCaller(t *testing.T) {
	e := newTestEcho()

	c, rec := newContext(e, http.MethodGet, "/api/dashboard/salesperson", "", primitive.NilObjectID, models.RoleSalesperson)

	dc := NewDashboardController(nil)
	if err := dc.SalespersonDashboard(c); err != nil {
		t.Fatalf("SalespersonDashboard() error = %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
