package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"rewardify-backend/models"
)

func TestCreateGiftCard(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "gift1@test.com", "VENDOR")

	body := map[string]interface{}{"amount": 500, "validity_days": 30, "description": "Birthday card"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var card models.GiftCard
	if err := db.Where("vendor_id = ?", vendor.ID).First(&card).Error; err != nil {
		t.Fatalf("expected gift card row, got %v", err)
	}
	if !regexp.MustCompile(`^[0-9A-F]{16}$`).MatchString(card.Code) {
		t.Errorf("unexpected code format: %s", card.Code)
	}
	if card.Amount != 500 {
		t.Errorf("expected amount 500, got %v", card.Amount)
	}
	expected := time.Now().Add(30 * 24 * time.Hour)
	if card.ExpirationDate.Before(expected.Add(-time.Minute)) || card.ExpirationDate.After(expected.Add(time.Minute)) {
		t.Errorf("unexpected expiration date: %v", card.ExpirationDate)
	}
}

func TestCreateGiftCardInvalidAmount(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	_, token := seedTestVendor(db, "gift2@test.com", "VENDOR")

	body := map[string]interface{}{"amount": 0, "validity_days": 30}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetGiftCardsStatusFilter(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "gift3@test.com", "VENDOR")

	seedGiftCard(db, vendor.ID, "AAAA111122223333", 30)

	redeemed := seedGiftCard(db, vendor.ID, "BBBB111122223333", 30)
	now := time.Now()
	db.Model(&redeemed).Updates(map[string]interface{}{"is_redeemed": true, "redeemed_at": now})

	expired := seedGiftCard(db, vendor.ID, "CCCC111122223333", 30)
	db.Model(&expired).Update("expiration_date", now.Add(-24*time.Hour))

	cases := []struct {
		status string
		want   string
	}{
		{"active", "AAAA111122223333"},
		{"redeemed", "BBBB111122223333"},
		{"expired", "CCCC111122223333"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authRequest("GET", "/api/gift-cards?status="+tc.status, nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("status %s: expected 200, got %d: %s", tc.status, w.Code, w.Body.String())
		}
		resp := parseResponse(w)
		cards := resp["gift_cards"].([]interface{})
		if len(cards) != 1 {
			t.Fatalf("status %s: expected 1 card, got %d", tc.status, len(cards))
		}
		card := cards[0].(map[string]interface{})
		if card["code"] != tc.want {
			t.Errorf("status %s: expected code %s, got %v", tc.status, tc.want, card["code"])
		}
	}
}

func TestRedeemGiftCard(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "redeem@test.com", "VENDOR")
	card := seedGiftCard(db, vendor.ID, "DDDD111122223333", 30)

	body := map[string]interface{}{"code": "dddd111122223333"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards/redeem", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded models.GiftCard
	db.First(&reloaded, "id = ?", card.ID)
	if !reloaded.IsRedeemed || reloaded.RedeemedAt == nil {
		t.Error("expected card to be marked redeemed")
	}
}

func TestRedeemGiftCardTwice(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "redeem2@test.com", "VENDOR")
	seedGiftCard(db, vendor.ID, "EEEE111122223333", 30)

	body := map[string]interface{}{"code": "EEEE111122223333"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards/redeem", body, token))
	if w.Code != http.StatusOK {
		t.Fatalf("first redemption failed: %d %s", w.Code, w.Body.String())
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, authRequest("POST", "/api/gift-cards/redeem", body, token))
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", w2.Code, w2.Body.String())
	}
	resp := parseResponse(w2)
	if resp["error"] != "Gift card has already been redeemed" {
		t.Errorf("unexpected error message: %v", resp["error"])
	}
}

func TestRedeemExpiredGiftCard(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "redeem3@test.com", "VENDOR")
	card := seedGiftCard(db, vendor.ID, "FFFF111122223333", 30)
	db.Model(&card).Update("expiration_date", time.Now().Add(-time.Hour))

	body := map[string]interface{}{"code": "FFFF111122223333"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards/redeem", body, token))

	if w.Code != http.StatusGone {
		t.Fatalf("expected status 410, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRedeemUnknownGiftCard(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	_, token := seedTestVendor(db, "redeem4@test.com", "VENDOR")

	body := map[string]interface{}{"code": "0000000000000000"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards/redeem", body, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRedeemGiftCardScopedToVendor(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendorA, _ := seedTestVendor(db, "redeema@test.com", "VENDOR")
	_, tokenB := seedTestVendor(db, "redeemb@test.com", "VENDOR")
	seedGiftCard(db, vendorA.ID, "ABCD111122223333", 30)

	body := map[string]interface{}{"code": "ABCD111122223333"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/gift-cards/redeem", body, tokenB))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteRedeemedGiftCard(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "giftdel@test.com", "VENDOR")
	card := seedGiftCard(db, vendor.ID, "1111222233334444", 30)
	db.Model(&card).Update("is_redeemed", true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/gift-cards/"+card.ID.String(), nil, token))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteGiftCard(t *testing.T) {
	db := freshDB()
	router := setupGiftCardRouter(db)
	vendor, token := seedTestVendor(db, "giftdel2@test.com", "VENDOR")
	card := seedGiftCard(db, vendor.ID, "5555666677778888", 30)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/gift-cards/"+card.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.GiftCard{}).Where("id = ?", card.ID).Count(&count)
	if count != 0 {
		t.Error("expected gift card to be deleted")
	}
}
