package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/Daina40/KadenaPrdn/internal/style/service"
	"github.com/Daina40/KadenaPrdn/internal/style/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupStyleTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, nil, nil)
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	styles := api.Group("/styles")
	styles.POST("", handlers.Style.Create)
	styles.GET("/overview", handlers.Style.Overview)
	styles.GET("/detail", handlers.Style.ListDetail)
	styles.GET("/filters", handlers.Style.Filters)
	styles.GET("/:id", handlers.Style.Get)
	styles.PUT("/:id", handlers.Style.Update)
	styles.DELETE("/:id", handlers.Style.Delete)
	styles.POST("/:id/promote", handlers.Style.Promote)
	styles.POST("/:id/descriptions", handlers.Style.AddDescription)
	styles.GET("/:id/comments", handlers.Comment.Index)
	styles.POST("/:id/comments", handlers.Comment.Save)
	styles.DELETE("/:id/comments", handlers.Comment.Delete)
	styles.GET("/:id/export", handlers.Export.ExportStyle)

	api.DELETE("/descriptions/:id", handlers.Style.DeleteDescription)

	return router, db
}

func createStyle(t *testing.T, router *gin.Engine, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(router, "POST", "/api/v1/styles", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create style: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestCreateStyleNormalizesFields(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name":   "  acme apparel ",
		"season":          "ss26",
		"style_no":        "st-001",
		"production_line": "line-1",
		"order_qty":       500,
		"apm":             "alice SMITH",
		"technician":      "bob",
		"description":     "Crew neck tee",
	})

	if data["season"] != "SS26" || data["style_no"] != "ST-001" || data["production_line"] != "LINE-1" {
		t.Errorf("identity fields should upper-case: %v %v %v", data["season"], data["style_no"], data["production_line"])
	}
	if data["apm"] != "Alice Smith" || data["technician"] != "Bob" {
		t.Errorf("role names should title-case: %v %v", data["apm"], data["technician"])
	}
	customer := data["customer"].(map[string]interface{})
	if customer["name"] != "ACME APPAREL" {
		t.Errorf("customer name should upper-case and trim: %v", customer["name"])
	}
	descs := data["descriptions"].([]interface{})
	if len(descs) != 1 {
		t.Fatalf("expected 1 seeded description, got %d", len(descs))
	}
}

func TestCreateStyleReusesCustomer(t *testing.T) {
	router, db := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	createStyle(t, router, token, map[string]interface{}{"customer_name": "ACME", "style_no": "ST-001"})
	createStyle(t, router, token, map[string]interface{}{"customer_name": "acme", "style_no": "ST-002"})

	var count int64
	db.Model(&entity.Customer{}).Count(&count)
	if count != 1 {
		t.Errorf("same customer name should not duplicate, got %d rows", count)
	}
}

func TestCreateStyleMalformedJSON(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRawRequest(router, "POST", "/api/v1/styles", `{"customer_name": `, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON should be 400, got %d", w.Code)
	}
}

func TestGetStyleNotFound(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/styles/does-not-exist", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing style should be 404, got %d", w.Code)
	}
}

func TestOverviewMethodNotAllowed(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/styles/overview", nil, token)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong verb should be 405, got %d", w.Code)
	}
}

func TestRequestWithoutTokenRejected(t *testing.T) {
	router, _ := setupStyleTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/styles/overview", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token should be 401, got %d", w.Code)
	}
}

func TestOverviewGroupsAndMerges(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	// Two identical rows plus one variant under the same style number.
	base := map[string]interface{}{
		"customer_name":   "ACME",
		"season":          "SS26",
		"style_no":        "ST-001",
		"production_line": "LINE-1",
		"apm":             "Alice",
		"description":     "Crew neck tee",
	}
	createStyle(t, router, token, base)
	createStyle(t, router, token, base)
	variant := map[string]interface{}{
		"customer_name":   "ACME",
		"season":          "SS26",
		"style_no":        "ST-001",
		"production_line": "LINE-2",
		"apm":             "Alice",
		"description":     "Contrast collar",
	}
	createStyle(t, router, token, variant)

	w := testutil.DoRequest(router, "GET", "/api/v1/styles/overview", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("overview: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	customers := resp["data"].(map[string]interface{})["customers"].([]interface{})
	if len(customers) != 1 {
		t.Fatalf("expected 1 customer group, got %d", len(customers))
	}
	group := customers[0].(map[string]interface{})
	if group["customer"] != "ACME" {
		t.Errorf("customer name: %v", group["customer"])
	}
	styleGroups := group["styles"].([]interface{})
	sg := styleGroups[0].(map[string]interface{})
	rows := sg["rows"].([]interface{})
	if len(rows) != 2 {
		t.Errorf("expected 2 deduplicated rows, got %d", len(rows))
	}
	if sg["rowspan"].(float64) != 2 || group["rowspan"].(float64) != 2 {
		t.Errorf("rowspans: style %v customer %v", sg["rowspan"], group["rowspan"])
	}
	descs := sg["descriptions"].([]interface{})
	if len(descs) != 2 {
		t.Errorf("expected union of 2 descriptions, got %d", len(descs))
	}
}

func TestPromoteClonesStyleTree(t *testing.T) {
	router, db := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
		"description":   "Crew neck tee",
	})
	styleID := data["id"].(string)
	descID := data["descriptions"].([]interface{})[0].(map[string]interface{})["id"].(string)

	// A description-scoped comment that must be remapped on promote.
	w := testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/comments", styleID), map[string]interface{}{
		"process":        "Fit sample",
		"comment":        "Approved",
		"description_id": descID,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("save comment: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/promote", styleID), map[string]interface{}{
		"order_qty": "2500",
		"season":    "aw26",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("promote: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	clone := testutil.ParseResponse(w)["data"].(map[string]interface{})

	if clone["id"] == styleID {
		t.Fatal("promote must create a new style row")
	}
	if clone["source"] != entity.SourceDetail {
		t.Errorf("clone source: %v", clone["source"])
	}
	if clone["order_qty"].(float64) != 2500 {
		t.Errorf("clone order qty: %v", clone["order_qty"])
	}
	if clone["season"] != "AW26" {
		t.Errorf("clone season override: %v", clone["season"])
	}

	cloneDescs := clone["descriptions"].([]interface{})
	if len(cloneDescs) != 1 {
		t.Fatalf("expected 1 cloned description, got %d", len(cloneDescs))
	}
	newDescID := cloneDescs[0].(map[string]interface{})["id"].(string)
	if newDescID == descID {
		t.Error("cloned description must get a fresh id")
	}

	cloneComments := clone["comments"].([]interface{})
	if len(cloneComments) != 1 {
		t.Fatalf("expected 1 cloned comment, got %d", len(cloneComments))
	}
	if got := cloneComments[0].(map[string]interface{})["description_id"]; got != newDescID {
		t.Errorf("cloned comment should point at the cloned description, got %v", got)
	}

	// Original untouched.
	var origComments int64
	db.Model(&entity.Comment{}).Where("style_id = ?", styleID).Count(&origComments)
	if origComments != 1 {
		t.Errorf("original comments changed: %d", origComments)
	}
}

func TestPromoteCopiesImageRowsSharingBlobs(t *testing.T) {
	router, db := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
		"description":   "Crew neck tee",
	})
	styleID := data["id"].(string)
	descID := data["descriptions"].([]interface{})[0].(map[string]interface{})["id"].(string)

	// One healthy image row and one corrupt row with no stored object.
	db.Create(&entity.Image{
		ID: "img-ok", StyleID: styleID, DescriptionID: descID,
		Name: "front.jpg", ObjectKey: "styles/x/front.jpg", ContentType: "image/jpeg", Size: 10,
	})
	db.Create(&entity.Image{
		ID: "img-corrupt", StyleID: styleID, DescriptionID: descID,
		Name: "lost.jpg", ObjectKey: "",
	})

	w := testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/promote", styleID), map[string]interface{}{
		"order_qty": "100",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("promote: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	clone := testutil.ParseResponse(w)["data"].(map[string]interface{})
	cloneID := clone["id"].(string)

	var cloned []entity.Image
	db.Where("style_id = ?", cloneID).Find(&cloned)
	if len(cloned) != 1 {
		t.Fatalf("expected 1 cloned image (corrupt row skipped), got %d", len(cloned))
	}
	if cloned[0].ObjectKey != "styles/x/front.jpg" {
		t.Errorf("clone must share the original blob key, got %q", cloned[0].ObjectKey)
	}
	if cloned[0].ID == "img-ok" {
		t.Error("cloned image must be a new row")
	}
	newDescID := clone["descriptions"].([]interface{})[0].(map[string]interface{})["id"].(string)
	if cloned[0].DescriptionID != newDescID {
		t.Errorf("cloned image should hang off the cloned description, got %s", cloned[0].DescriptionID)
	}
}

func TestPromoteRejectsBadQuantity(t *testing.T) {
	router, db := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
	})
	styleID := data["id"].(string)

	for _, qty := range []string{"0", "-5", "", "abc"} {
		w := testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/promote", styleID), map[string]interface{}{
			"order_qty": qty,
		}, token)
		if w.Code != http.StatusBadRequest {
			t.Errorf("order_qty %q: expected 400, got %d", qty, w.Code)
		}
	}

	// Nothing was cloned on any failed attempt.
	var count int64
	db.Model(&entity.Style{}).Count(&count)
	if count != 1 {
		t.Errorf("failed promotes must not create styles, have %d rows", count)
	}
}

func TestPromoteMissingStyle(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/styles/nope/promote", map[string]interface{}{
		"order_qty": "100",
	}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("promoting a missing style should be 404, got %d", w.Code)
	}
}

func TestUpdateStyleInPlace(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
		"order_qty":     100,
	})
	styleID := data["id"].(string)

	w := testutil.DoRequest(router, "PUT", "/api/v1/styles/"+styleID, map[string]interface{}{
		"order_qty":  250,
		"technician": "frank",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if updated["id"] != styleID {
		t.Error("update must not create a new row")
	}
	if updated["order_qty"].(float64) != 250 || updated["technician"] != "Frank" {
		t.Errorf("updated fields: %v %v", updated["order_qty"], updated["technician"])
	}
}

func TestDeleteStyleCascades(t *testing.T) {
	router, db := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
		"description":   "Crew neck tee",
	})
	styleID := data["id"].(string)

	w := testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/comments", styleID), map[string]interface{}{
		"process": "Fit sample",
		"comment": "Approved",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("save comment: %d", w.Code)
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/styles/"+styleID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var styles, descs, comments int64
	db.Model(&entity.Style{}).Count(&styles)
	db.Model(&entity.Description{}).Count(&descs)
	db.Model(&entity.Comment{}).Count(&comments)
	if styles != 0 || descs != 0 || comments != 0 {
		t.Errorf("cascade incomplete: styles=%d descs=%d comments=%d", styles, descs, comments)
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/styles/"+styleID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleting twice should be 404, got %d", w.Code)
	}
}

func TestFilters(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	createStyle(t, router, token, map[string]interface{}{
		"customer_name":   "ACME",
		"season":          "SS26",
		"style_no":        "ST-001",
		"production_line": "LINE-1",
	})
	createStyle(t, router, token, map[string]interface{}{
		"customer_name":   "BETA",
		"season":          "AW26",
		"style_no":        "ST-002",
		"production_line": "LINE-1",
	})

	w := testutil.DoRequest(router, "GET", "/api/v1/styles/filters", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("filters: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if len(data["customers"].([]interface{})) != 2 {
		t.Errorf("customers: %v", data["customers"])
	}
	if len(data["seasons"].([]interface{})) != 2 {
		t.Errorf("seasons: %v", data["seasons"])
	}
	if len(data["lines"].([]interface{})) != 1 {
		t.Errorf("lines should deduplicate: %v", data["lines"])
	}
}

func TestAddAndDeleteDescription(t *testing.T) {
	router, db := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
	})
	styleID := data["id"].(string)

	w := testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/descriptions", styleID), map[string]interface{}{
		"text": "Contrast collar",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("add description: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	descID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// Blank text rejected.
	w = testutil.DoRequest(router, "POST", fmt.Sprintf("/api/v1/styles/%s/descriptions", styleID), map[string]interface{}{
		"text": "   ",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank description should be 400, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/descriptions/"+descID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete description: expected 200, got %d", w.Code)
	}

	var count int64
	db.Model(&entity.Description{}).Count(&count)
	if count != 0 {
		t.Errorf("description not deleted, %d left", count)
	}
}

func TestExportStyleHeaders(t *testing.T) {
	router, _ := setupStyleTest(t)
	token := testutil.DefaultTestToken()

	data := createStyle(t, router, token, map[string]interface{}{
		"customer_name": "ACME",
		"style_no":      "ST-001",
	})
	styleID := data["id"].(string)

	w := testutil.DoRequest(router, "GET", fmt.Sprintf("/api/v1/styles/%s/export", styleID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="Style_ST-001_Summary.xlsx"` {
		t.Errorf("content disposition: %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("export body is empty")
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/styles/nope/export", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("exporting a missing style should be 404, got %d", w.Code)
	}
}
