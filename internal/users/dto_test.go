package users

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
)

func TestFromModelOmitsPassword(t *testing.T) {
	subscribed := time.Date(2024, 5, 4, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	user := &models.User{
		ID:               1,
		Email:            "a@example.com",
		Password:         "$argon2id$secret",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		SubscriptionDate: &subscribed,
		IsActive:         true,
	}

	got, err := json.Marshal(FromModel(user))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"email":"a@example.com","first_name":"Ada","last_name":"Lovelace","subscription_date":"2024-05-04T10:00:00Z","is_active":true}`
	if string(got) != want {
		t.Fatalf("unexpected json\n got: %s\nwant: %s", got, want)
	}
	if strings.Contains(string(got), "password") {
		t.Fatal("password leaked into serialization")
	}
}

func TestFromModelKeepsFractionalSeconds(t *testing.T) {
	subscribed := time.Date(2024, 5, 4, 10, 0, 0, 123456789, time.UTC)
	dto := FromModel(&models.User{SubscriptionDate: &subscribed})
	if dto.SubscriptionDate == nil || *dto.SubscriptionDate != "2024-05-04T10:00:00.123456789Z" {
		t.Fatalf("unexpected subscription date %v", dto.SubscriptionDate)
	}
}

func TestFromModelNullSubscriptionDate(t *testing.T) {
	dto := FromModel(&models.User{ID: 2, Email: "b@example.com"})
	if dto.SubscriptionDate != nil {
		t.Fatalf("expected nil subscription date, got %q", *dto.SubscriptionDate)
	}
	if FromModel(nil) != nil {
		t.Fatal("expected nil dto for nil model")
	}
}

func TestCreateUserDTOToModelDefaults(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	user := CreateUserDTO{Email: "c@example.com", Password: "hash", FirstName: "C", LastName: "D"}.ToModel()

	if !user.IsActive {
		t.Fatal("expected new users to be active by default")
	}
	if user.SubscriptionDate == nil || user.SubscriptionDate.Before(before) {
		t.Fatalf("expected subscription date to default to now, got %v", user.SubscriptionDate)
	}

	inactive := false
	if (CreateUserDTO{IsActive: &inactive}).ToModel().IsActive {
		t.Fatal("expected explicit is_active=false to be kept")
	}
}

func TestUpdateChanges(t *testing.T) {
	active := false
	changes := UpdateUserDTO{IsActive: &active, Unset: []string{"subscription_date"}}.Changes()
	if len(changes) != 2 || changes["is_active"] != false {
		t.Fatalf("unexpected changes %v", changes)
	}
	if v, ok := changes["subscription_date"]; !ok || v != nil {
		t.Fatalf("expected subscription_date to be unset, got %v", changes)
	}
}
