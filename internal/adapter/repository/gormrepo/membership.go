package gormrepo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"vms-backend/internal/domain/membership"
)

type MembershipRepository struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "membership")
}

func (r *MembershipRepository) Save(ctx context.Context, m *membership.Membership) error {
	return translate(r.db.WithContext(ctx).Save(m).Error, "membership")
}

func (r *MembershipRepository) GetByID(ctx context.Context, id uint64) (*membership.Membership, error) {
	var out membership.Membership
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, translate(res.Error, "membership")
}

func (r *MembershipRepository) GetByEmail(ctx context.Context, email string) (*membership.Membership, error) {
	var out membership.Membership
	res := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&out)
	return &out, translate(res.Error, "membership")
}

func (r *MembershipRepository) List(ctx context.Context, f membership.Filter) ([]membership.Membership, error) {
	var out []membership.Membership
	q := r.db.WithContext(ctx).Order("id ASC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	return out, translate(q.Find(&out).Error, "memberships")
}

func (r *MembershipRepository) Collisions(ctx context.Context, username, email, srcode string) ([]string, error) {
	var rows []membership.Membership
	err := r.db.WithContext(ctx).
		Select("username", "email", "srcode").
		Where("username = ? OR LOWER(email) = LOWER(?) OR srcode = ?", username, email, srcode).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "membership")
	}
	var user, mail, code bool
	for _, m := range rows {
		user = user || m.Username == username
		mail = mail || strings.EqualFold(m.Email, email)
		code = code || m.SRCode == srcode
	}
	var out []string
	if user {
		out = append(out, "username")
	}
	if mail {
		out = append(out, "email")
	}
	if code {
		out = append(out, "srcode")
	}
	return out, nil
}
