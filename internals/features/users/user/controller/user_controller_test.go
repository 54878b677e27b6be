package controller

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sevasangh_backend/internals/constants"
	userModel "sevasangh_backend/internals/features/users/user/model"
)

func setupListApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userModel.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	ctl := New(db, validator.New())
	app.Get("/users", ctl.List)
	return app, db
}

func seedAccount(t *testing.T, db *gorm.DB, username, role string) {
	t.Helper()
	u := userModel.UserModel{
		UserName: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
}

func fetchUsernames(t *testing.T, app *fiber.App, path string) []string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("request %s: status %d", path, resp.StatusCode)
	}

	var body struct {
		Data []userModel.UserModel `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	names := make([]string, 0, len(body.Data))
	for _, u := range body.Data {
		names = append(names, u.UserName)
	}
	return names
}

func TestListSortedByWhitelistedKey(t *testing.T) {
	app, db := setupListApp(t)

	seedAccount(t, db, "meena", constants.RoleReceiptCreator)
	seedAccount(t, db, "arjun", constants.RoleAdmin)
	seedAccount(t, db, "zoya", constants.RoleReceiptReportViewer)

	cases := []struct {
		name string
		path string
		want []string
	}{
		{"default name asc", "/users", []string{"arjun", "meena", "zoya"}},
		{"name desc", "/users?sort_by=name&sort_order=desc", []string{"zoya", "meena", "arjun"}},
		{"role asc", "/users?sort_by=role&sort_order=asc", []string{"arjun", "meena", "zoya"}},
		{"unknown key falls back to name", "/users?sort_by=password;DROP", []string{"arjun", "meena", "zoya"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fetchUsernames(t, app, tc.path)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}
