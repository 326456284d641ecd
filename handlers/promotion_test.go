package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rewardify-backend/models"
)

func TestCreatePromotionDerivesUpdatedPrice(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	_, token := seedTestVendor(db, "promo1@test.com", "VENDOR")

	body := map[string]interface{}{
		"name":             "Summer Sale",
		"category":         "food",
		"original_price":   200,
		"discount_percent": 25,
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/promotions", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["updated_price"] != 150.0 {
		t.Errorf("expected updated_price 150, got %v", resp["updated_price"])
	}
}

func TestCreatePromotionDerivesDiscount(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	_, token := seedTestVendor(db, "promo2@test.com", "VENDOR")

	body := map[string]interface{}{
		"name":           "Combo Deal",
		"category":       "food",
		"original_price": 100,
		"updated_price":  80,
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/promotions", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["discount_percent"] != 20.0 {
		t.Errorf("expected discount_percent 20, got %v", resp["discount_percent"])
	}
}

func TestCreatePromotionEndBeforeStart(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	_, token := seedTestVendor(db, "promo3@test.com", "VENDOR")

	start := time.Now().Add(48 * time.Hour)
	end := time.Now().Add(24 * time.Hour)
	body := map[string]interface{}{
		"name":           "Backwards",
		"category":       "food",
		"original_price": 100,
		"start_date":     start.Format(time.RFC3339),
		"end_date":       end.Format(time.RFC3339),
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/promotions", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetPromotionsActiveFilter(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendor, token := seedTestVendor(db, "promo4@test.com", "VENDOR")

	seedPromotion(db, vendor.ID, "Live", true)
	seedPromotion(db, vendor.ID, "Paused", false)

	ended := seedPromotion(db, vendor.ID, "Ended", true)
	past := time.Now().Add(-24 * time.Hour)
	db.Model(&ended).Update("end_date", past)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/promotions?active=true", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	promotions := resp["promotions"].([]interface{})
	if len(promotions) != 1 {
		t.Fatalf("expected 1 active promotion, got %d", len(promotions))
	}
	promo := promotions[0].(map[string]interface{})
	if promo["name"] != "Live" {
		t.Errorf("expected Live, got %v", promo["name"])
	}
}

func TestUpdatePromotion(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendor, token := seedTestVendor(db, "promo5@test.com", "VENDOR")
	promo := seedPromotion(db, vendor.ID, "Old Name", true)

	body := map[string]interface{}{
		"name":           "New Name",
		"category":       "beverages",
		"original_price": 120,
		"updated_price":  90,
		"is_active":      false,
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/promotions/"+promo.ID.String(), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded models.Promotion
	db.First(&reloaded, "id = ?", promo.ID)
	if reloaded.Name != "New Name" || reloaded.IsActive {
		t.Errorf("update not applied: name=%s active=%v", reloaded.Name, reloaded.IsActive)
	}
}

func TestPromotionScopedToVendor(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendorA, _ := seedTestVendor(db, "promoa@test.com", "VENDOR")
	_, tokenB := seedTestVendor(db, "promob@test.com", "VENDOR")
	promo := seedPromotion(db, vendorA.ID, "Mine", true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/promotions/"+promo.ID.String(), nil, tokenB))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPromotionWriteRejectsEmployeeToken(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendor, _ := seedTestVendor(db, "promoemp@test.com", "VENDOR")
	_, empToken := seedTestEmployee(db, vendor.ID, "staff@test.com", map[string]bool{"canViewTransactions": true})

	body := map[string]interface{}{"name": "Nope", "category": "food", "original_price": 50}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/promotions", body, empToken))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadPromotionImage(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendor, token := seedTestVendor(db, "promoimg@test.com", "VENDOR")
	promo := seedPromotion(db, vendor.ID, "Pictured", true)

	w := httptest.NewRecorder()
	req := multipartRequest("POST", "/api/promotions/"+promo.ID.String()+"/images", nil, map[string]string{"image": "photo.jpg"}, token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["url"] == "" || resp["url"] == nil {
		t.Error("expected an image url in the response")
	}
	images := resp["images"].([]interface{})
	if len(images) != 1 {
		t.Errorf("expected 1 image, got %d", len(images))
	}
}

func TestUploadPromotionImageMissingFile(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendor, token := seedTestVendor(db, "promoimg2@test.com", "VENDOR")
	promo := seedPromotion(db, vendor.ID, "Pictured", true)

	w := httptest.NewRecorder()
	req := multipartRequest("POST", "/api/promotions/"+promo.ID.String()+"/images", nil, nil, token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeletePromotion(t *testing.T) {
	db := freshDB()
	router := setupPromotionRouter(db)
	vendor, token := seedTestVendor(db, "promodel@test.com", "VENDOR")
	promo := seedPromotion(db, vendor.ID, "Short Lived", true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/promotions/"+promo.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Promotion{}).Where("id = ?", promo.ID).Count(&count)
	if count != 0 {
		t.Error("expected promotion to be soft deleted")
	}
}
