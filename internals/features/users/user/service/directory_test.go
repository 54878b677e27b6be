package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sevasangh_backend/internals/constants"
	userModel "sevasangh_backend/internals/features/users/user/model"
)

func setupDirectory(t *testing.T) (*Directory, *gorm.DB) {
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
	return NewDirectory(db), db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string, active bool) uint {
	t.Helper()
	u := userModel.UserModel{
		UserName: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: active,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return u.ID
}

func TestResolveCreatorCode(t *testing.T) {
	dir, db := setupDirectory(t)
	ctx := context.Background()

	adminID := seedUser(t, db, "office_admin", constants.RoleAdmin, true)
	creator3ID := seedUser(t, db, "receipt_creator3", constants.RoleReceiptCreator, true)
	numericID := seedUser(t, db, "desk12clerk7", constants.RoleReceiptCreator, true)
	plainID := seedUser(t, db, "ramesh", constants.RoleReceiptCreator, true)

	cases := []struct {
		name string
		id   uint
		want string
	}{
		{"admin role wins over username", adminID, "RCA"},
		{"receipt_creator pattern", creator3ID, "RC3"},
		{"last numeric token of username", numericID, "RC7"},
		{"fallback to creator id", plainID, "RC" + strconv.FormatUint(uint64(plainID), 10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dir.ResolveCreatorCode(ctx, tc.id)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tc.want {
				t.Errorf("code = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveCreatorCodeUnknownID(t *testing.T) {
	dir, _ := setupDirectory(t)
	if _, err := dir.ResolveCreatorCode(context.Background(), 999); err == nil {
		t.Fatal("expected error for unknown creator")
	}
}

func TestCreatePersistsInactiveFlag(t *testing.T) {
	_, db := setupDirectory(t)

	id := seedUser(t, db, "suspended", constants.RoleReceiptCreator, false)

	var got userModel.UserModel
	if err := db.First(&got, "id = ?", id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.IsActive {
		t.Fatal("stored is_active = true, want false")
	}
}

func TestActiveUsernamesSkipsDeactivated(t *testing.T) {
	dir, db := setupDirectory(t)
	ctx := context.Background()

	activeID := seedUser(t, db, "anita", constants.RoleReceiptCreator, true)
	inactiveID := seedUser(t, db, "gone", constants.RoleReceiptCreator, false)

	got, err := dir.ActiveUsernames(ctx, []uint{activeID, inactiveID})
	if err != nil {
		t.Fatalf("active usernames: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[activeID] != "anita" {
		t.Errorf("missing active user: %v", got)
	}
	if _, ok := got[inactiveID]; ok {
		t.Errorf("deactivated user leaked into result")
	}
}

func TestActiveUsernamesEmptyInput(t *testing.T) {
	dir, _ := setupDirectory(t)
	got, err := dir.ActiveUsernames(context.Background(), nil)
	if err != nil {
		t.Fatalf("active usernames: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestRolesOf(t *testing.T) {
	dir, db := setupDirectory(t)
	id := seedUser(t, db, "viewer1", constants.RoleReceiptReportViewer, true)

	roles, err := dir.RolesOf(context.Background(), id)
	if err != nil {
		t.Fatalf("roles of: %v", err)
	}
	if len(roles) != 1 || roles[0] != constants.RoleReceiptReportViewer {
		t.Errorf("roles = %v", roles)
	}
}
