package service

import (
	"context"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	userModel "sevasangh_backend/internals/features/users/user/model"
)

// Directory answers identity questions for the receipt ledger: who a
// creator is, what their display code is, which accounts are active.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

var (
	receiptCreatorPattern = regexp.MustCompile(`^receipt_creator(\d+)$`)
	numericTokenPattern   = regexp.MustCompile(`\d+`)
)

// ResolveCreatorCode maps a creator identity to the short code embedded in
// receipt numbers: "RCA" for admins, "RC<N>" for receipt_creator<N>
// usernames, otherwise the last numeric token of the username (or the
// creator id itself) behind the "RC" prefix so the final number always
// matches the published pattern.
func (d *Directory) ResolveCreatorCode(ctx context.Context, creatorID uint) (string, error) {
	var u userModel.UserModel
	if err := d.db.WithContext(ctx).First(&u, "id = ?", creatorID).Error; err != nil {
		return "", fmt.Errorf("creator %d not found: %w", creatorID, err)
	}

	if u.Role == constants.RoleAdmin {
		return "RCA", nil
	}
	if m := receiptCreatorPattern.FindStringSubmatch(u.UserName); m != nil {
		return "RC" + m[1], nil
	}
	if nums := numericTokenPattern.FindAllString(u.UserName, -1); len(nums) > 0 {
		return "RC" + nums[len(nums)-1], nil
	}
	return fmt.Sprintf("RC%d", creatorID), nil
}

// RolesOf returns the role set of an identity.
func (d *Directory) RolesOf(ctx context.Context, id uint) ([]string, error) {
	var u userModel.UserModel
	if err := d.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return []string{u.Role}, nil
}

// ActiveUsernames resolves ids to usernames, skipping deactivated accounts.
func (d *Directory) ActiveUsernames(ctx context.Context, ids []uint) (map[uint]string, error) {
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	var users []userModel.UserModel
	if err := d.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(users))
	for _, u := range users {
		out[u.ID] = u.UserName
	}
	return out, nil
}
