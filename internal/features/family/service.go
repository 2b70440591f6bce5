package family

import (
	"context"
	"errors"

	"casa360/internal/common/models"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrLastAdmin    = errors.New("cannot remove the last admin of a family")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNotYourOwn   = errors.New("member belongs to another family")
	ErrNotPermitted = errors.New("operation not permitted")
)

type FamilyService interface {
	GetGroup(ctx context.Context, familyID string) (*Group, error)
	ListMembers(ctx context.Context, familyID string) ([]Member, error)
	GetMember(ctx context.Context, familyID, memberID string) (*Member, error)
	UpdateMember(ctx context.Context, familyID, actorID, actorRole, memberID string, updates MemberUpdate) error
	RemoveMember(ctx context.Context, familyID, actorRole, memberID string) error
}

// MemberUpdate carries the mutable member fields; nil means "leave as is".
type MemberUpdate struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	AvatarColor *string `json:"avatar_color"`
}

type FamilyServiceImpl struct {
	GroupRepo  GroupRepository
	MemberRepo MemberRepository
	Hub        *realtime.Hub
}

func NewFamilyService(groupRepo GroupRepository, memberRepo MemberRepository, hub *realtime.Hub) FamilyService {
	return &FamilyServiceImpl{
		GroupRepo:  groupRepo,
		MemberRepo: memberRepo,
		Hub:        hub,
	}
}

func (s *FamilyServiceImpl) GetGroup(ctx context.Context, familyID string) (*Group, error) {
	return s.GroupRepo.Get(ctx, familyID)
}

func (s *FamilyServiceImpl) ListMembers(ctx context.Context, familyID string) ([]Member, error) {
	return s.MemberRepo.FindByFamily(ctx, familyID)
}

func (s *FamilyServiceImpl) GetMember(ctx context.Context, familyID, memberID string) (*Member, error) {
	member, err := s.MemberRepo.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.FamilyID.Hex() != familyID {
		return nil, ErrNotYourOwn
	}
	return member, nil
}

func (s *FamilyServiceImpl) UpdateMember(ctx context.Context, familyID, actorID, actorRole, memberID string, updates MemberUpdate) error {
	member, err := s.GetMember(ctx, familyID, memberID)
	if err != nil {
		return err
	}

	// Members may edit their own name and color; role changes are admin-only.
	if actorRole != RoleAdmin && actorID != memberID {
		return ErrNotPermitted
	}

	set := bson.M{}
	if updates.Name != nil {
		set["name"] = *updates.Name
	}
	if updates.AvatarColor != nil {
		set["avatar_color"] = *updates.AvatarColor
	}
	if updates.Role != nil {
		if actorRole != RoleAdmin {
			return ErrNotPermitted
		}
		switch *updates.Role {
		case RoleAdmin, RoleMember, RoleChild:
		default:
			return ErrInvalidRole
		}
		// Demoting the last admin would orphan the family.
		if member.Role == RoleAdmin && *updates.Role != RoleAdmin {
			admins, err := s.MemberRepo.CountAdmins(ctx, familyID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}
		set["role"] = *updates.Role
	}

	if len(set) == 0 {
		return nil
	}

	if err := s.MemberRepo.Update(ctx, memberID, set); err != nil {
		return err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "family_members",
		Event:    models.ChangeUpdate,
		RowID:    memberID,
		FamilyID: familyID,
	})
	return nil
}

func (s *FamilyServiceImpl) RemoveMember(ctx context.Context, familyID, actorRole, memberID string) error {
	if actorRole != RoleAdmin {
		return ErrNotPermitted
	}

	member, err := s.GetMember(ctx, familyID, memberID)
	if err != nil {
		return err
	}

	if member.Role == RoleAdmin {
		admins, err := s.MemberRepo.CountAdmins(ctx, familyID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.MemberRepo.Delete(ctx, memberID); err != nil {
		return err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "family_members",
		Event:    models.ChangeDelete,
		RowID:    memberID,
		FamilyID: familyID,
	})
	return nil
}
