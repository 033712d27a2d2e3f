package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"duka/manager/internal/model"
	"duka/manager/internal/service/authprovider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// IdentityProvider creates and authenticates user identities. It is implemented by authprovider.Client.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, fullName string) (authprovider.User, error)
	SignIn(ctx context.Context, email, password string) (authprovider.Session, error)
}

type ShopService struct {
	store Store
	idp   IdentityProvider
	log   *zap.Logger
	now   func() time.Time
}

func NewShopService(store Store, idp IdentityProvider, log *zap.Logger) *ShopService {
	return &ShopService{store: store, idp: idp, log: log, now: time.Now}
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	ShopName string `json:"shop_name"`
}

type EmployeeInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Account is the caller's view of who they are and which shop they work in.
type Account struct {
	Member model.Member `json:"member"`
	Shop   model.Shop   `json:"shop"`
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: a valid email is required", model.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// SignUp registers an owner account and opens a shop for it.
func (s *ShopService) SignUp(ctx context.Context, in SignUpInput) (Account, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return Account{}, err
	}

	user, err := s.idp.SignUp(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		return Account{}, err
	}

	shopName := strings.TrimSpace(in.ShopName)
	if shopName == "" {
		shopName = fmt.Sprintf("%s's Shop", in.FullName)
	}
	now := s.now()
	acc := Account{
		Shop: model.Shop{ID: uuid.NewString(), Name: shopName, CreatedAt: now},
	}
	acc.Member = model.Member{
		ID:        uuid.NewString(),
		ShopID:    acc.Shop.ID,
		UserID:    user.ID,
		Role:      model.RoleOwner,
		CreatedAt: now,
	}

	err = s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.store.CreateShop(ctx, acc.Shop); err != nil {
			return err
		}
		if err := s.store.CreateProfile(ctx, model.Profile{ID: user.ID, Email: in.Email, FullName: in.FullName}); err != nil {
			return err
		}
		return s.store.CreateMember(ctx, acc.Member)
	})
	if err != nil {
		return Account{}, err
	}

	s.log.Info("shop created", zap.String("shop_id", acc.Shop.ID), zap.String("owner_id", user.ID))
	return acc, nil
}

func (s *ShopService) SignIn(ctx context.Context, email, password string) (authprovider.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return authprovider.Session{}, fmt.Errorf("%w: email and password are required", model.ErrInvalidInput)
	}
	session, err := s.idp.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		var apiErr *authprovider.ErrorResponse
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return authprovider.Session{}, fmt.Errorf("%w: %v", model.ErrUnauthorized, apiErr)
		}
		return authprovider.Session{}, err
	}
	return session, nil
}

// Membership resolves the shop membership of an authenticated user.
func (s *ShopService) Membership(ctx context.Context, userID string) (model.Member, error) {
	m, err := s.store.GetMemberByUser(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Member{}, fmt.Errorf("%w: user is not a member of any shop", model.ErrForbidden)
	}
	return m, err
}

func (s *ShopService) Account(ctx context.Context, actor model.Member) (Account, error) {
	shop, err := s.store.GetShop(ctx, actor.ShopID)
	if err != nil {
		return Account{}, err
	}
	return Account{Member: actor, Shop: shop}, nil
}

// CreateEmployee registers an attendant account in the owner's shop.
func (s *ShopService) CreateEmployee(ctx context.Context, actor model.Member, in EmployeeInput) (model.Employee, error) {
	if err := requireOwner(actor); err != nil {
		return model.Employee{}, err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return model.Employee{}, err
	}

	user, err := s.idp.SignUp(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		return model.Employee{}, err
	}

	member := model.Member{
		ID:        uuid.NewString(),
		ShopID:    actor.ShopID,
		UserID:    user.ID,
		Role:      model.RoleAttendant,
		CreatedAt: s.now(),
	}
	err = s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.store.CreateProfile(ctx, model.Profile{ID: user.ID, Email: in.Email, FullName: in.FullName}); err != nil {
			return err
		}
		return s.store.CreateMember(ctx, member)
	})
	if err != nil {
		return model.Employee{}, err
	}

	s.log.Info("employee added", zap.String("shop_id", actor.ShopID), zap.String("user_id", user.ID))
	return model.Employee{
		ID:       member.ID,
		UserID:   user.ID,
		Role:     member.Role,
		Email:    in.Email,
		FullName: in.FullName,
	}, nil
}

func (s *ShopService) ListEmployees(ctx context.Context, actor model.Member) ([]model.Employee, error) {
	if err := requireOwner(actor); err != nil {
		return nil, err
	}
	return s.store.ListEmployees(ctx, actor.ShopID)
}

// RemoveEmployee takes an attendant out of the shop. Owners cannot be removed.
func (s *ShopService) RemoveEmployee(ctx context.Context, actor model.Member, memberID string) error {
	if err := requireOwner(actor); err != nil {
		return err
	}
	return s.store.RunAtomic(ctx, func(ctx context.Context) error {
		m, err := s.store.GetMember(ctx, actor.ShopID, memberID)
		if err != nil {
			return err
		}
		if m.IsOwner() {
			return fmt.Errorf("%w: the shop owner cannot be removed", model.ErrForbidden)
		}
		if err := s.store.DeleteMember(ctx, actor.ShopID, memberID); err != nil {
			return err
		}
		s.log.Info("employee removed", zap.String("shop_id", actor.ShopID), zap.String("member_id", memberID))
		return nil
	})
}
