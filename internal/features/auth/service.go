package auth

import (
	"context"
	"errors"
	"time"

	"casa360/internal/features/family"
	"casa360/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInviteNotFound     = errors.New("invite code not valid")
)

// Default avatar palette used when a new member does not pick a color.
var avatarColors = []string{"#3b82f6", "#ef4444", "#22c55e", "#eab308", "#a855f7", "#ec4899"}

type AuthService interface {
	Register(ctx context.Context, name, email, password, familyName, inviteCode string) (*family.Member, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*family.Member, error)
}

type AuthServiceImpl struct {
	GroupRepo  family.GroupRepository
	MemberRepo family.MemberRepository
}

func NewAuthService(groupRepo family.GroupRepository, memberRepo family.MemberRepository) AuthService {
	return &AuthServiceImpl{
		GroupRepo:  groupRepo,
		MemberRepo: memberRepo,
	}
}

// Register creates the account member row. Without an invite code a new
// family group is created and the registrant becomes its admin; with one,
// the registrant joins that family as a plain member.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password, familyName, inviteCode string) (*family.Member, error) {
	if _, err := s.MemberRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := family.RoleMember
	var familyID primitive.ObjectID

	if inviteCode != "" {
		group, err := s.GroupRepo.FindByInviteCode(ctx, inviteCode)
		if err != nil {
			return nil, ErrInviteNotFound
		}
		familyID = group.ID
	} else {
		if familyName == "" {
			familyName = name + "'s Family"
		}
		newMemberID := primitive.NewObjectID()
		group := family.Group{
			ID:         primitive.NewObjectID(),
			Name:       familyName,
			InviteCode: utils.Slugify(familyName) + "-" + primitive.NewObjectID().Hex()[:6],
			CreatedBy:  newMemberID,
		}
		if err := s.GroupRepo.Create(ctx, &group); err != nil {
			return nil, err
		}
		familyID = group.ID
		role = family.RoleAdmin

		member := family.Member{
			ID:           newMemberID,
			FamilyID:     familyID,
			Name:         name,
			Email:        email,
			PasswordHash: string(hashed),
			Role:         role,
			AvatarColor:  avatarColors[0],
		}
		if err := s.MemberRepo.Create(ctx, &member); err != nil {
			return nil, err
		}
		return &member, nil
	}

	member := family.Member{
		FamilyID:     familyID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		AvatarColor:  avatarColors[int(time.Now().UnixNano())%len(avatarColors)],
	}
	if err := s.MemberRepo.Create(ctx, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	member, err := s.MemberRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(member.ID, member.FamilyID, member.Role)
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*family.Member, error) {
	return s.MemberRepo.Get(ctx, userID)
}
