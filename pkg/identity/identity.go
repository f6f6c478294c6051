// Package identity proxies user management to the hosted identity provider and
// keeps a local mirror of each user's status and role under users/.
//
// A provider write followed by a failed mirror write is retried a few times.
// If the mirror still cannot be written the provider change is undone where an
// inverse exists (create is undone by delete, ban by unban and unban by ban) and
// the caller gets an upstream error. Deletes have no inverse and only report.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

const (
	rootUsers        = "users"
	rootLoginHistory = "loginHistory"

	DefaultMirrorAttempts     = 3
	DefaultLoginHistoryLimit  = 10
	DefaultLoginMethod        = "password"
	defaultMirrorRetryBackoff = 100 * time.Millisecond
)

type CreateUserInput struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	PhoneNumber  string `json:"phone_number"`
	Role         string `json:"role"`
}

type Service struct {
	Provider Provider
	Store    rtdb.Store
	Clock    func() time.Time

	MirrorAttempts int
	RetryBackoff   time.Duration
}

func NewService(provider Provider, store rtdb.Store) *Service {
	return &Service{
		Provider:       provider,
		Store:          store,
		MirrorAttempts: DefaultMirrorAttempts,
		RetryBackoff:   defaultMirrorRetryBackoff,
	}
}

func (s *Service) logger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNameIdentity, common.LoggerCategoryIdentityMirror)
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func userPath(userID string) string { return rtdb.Join(rootUsers, userID) }

func loginHistoryPath(userID string) string { return rtdb.Join(rootLoginHistory, userID) }

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return common.NewValidationError("userId is required", []string{"userId"})
	}
	if err := rtdb.ValidateKey(userID); err != nil {
		return common.NewValidationError("userId contains illegal characters", []string{"userId"})
	}
	return nil
}

// mirror runs write until it succeeds or the attempts are used up.
func (s *Service) mirror(ctx context.Context, op, userID string, write func(ctx context.Context) error) error {
	attempts := s.MirrorAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = write(ctx); err == nil {
			return nil
		}
		s.logger().Warn("Mirror write failed",
			zap.String("op", op),
			zap.String("user_id", userID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.RetryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

// compensate undoes a provider change after the mirror gave up.
func (s *Service) compensate(ctx context.Context, op, userID string, undo func(ctx context.Context) error, mirrorErr error) error {
	logger := s.logger()
	if undoErr := undo(context.WithoutCancel(ctx)); undoErr != nil {
		logger.Error("Compensation failed, provider and mirror disagree",
			zap.String("op", op),
			zap.String("user_id", userID),
			zap.NamedError("mirror_error", mirrorErr),
			zap.NamedError("undo_error", undoErr),
		)
		return common.NewUpstreamError(fmt.Sprintf("Error saving user %s: local mirror and identity provider are out of sync", op), mirrorErr)
	}
	logger.Warn("Provider change rolled back after mirror failure", zap.String("op", op), zap.String("user_id", userID))
	return common.NewUpstreamError(fmt.Sprintf("Error saving user %s: change was rolled back", op), mirrorErr)
}

func (s *Service) profileFrom(user *ClerkUser) models.UserProfile {
	status := models.UserStatusActive
	if user.Banned {
		status = models.UserStatusBanned
	}
	profile := models.UserProfile{
		ClerkID:      user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.PrimaryEmail(),
		Username:     user.Username,
		ImageURL:     user.ImageURL,
		Role:         user.Role(),
		Status:       status,
		CreatedAt:    models.Timestamp(user.CreatedAt),
		UpdatedAt:    models.Timestamp(user.UpdatedAt),
	}
	if len(user.PhoneNumbers) > 0 {
		profile.PhoneNumber = user.PhoneNumbers[0].PhoneNumber
	}
	return profile
}

func (s *Service) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserProfile, error) {
	logger := s.logger()

	if input == nil {
		return nil, common.NewValidationError("user body is required", nil)
	}
	var missing []string
	if strings.TrimSpace(input.EmailAddress) == "" {
		missing = append(missing, "email_address")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, common.NewValidationError("Email address and password are required", missing)
	}

	params := CreateUserParams{
		EmailAddress: []string{strings.TrimSpace(input.EmailAddress)},
		Password:     input.Password,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Username:     strings.TrimSpace(input.Username),
	}
	if phone := strings.TrimSpace(input.PhoneNumber); phone != "" {
		params.PhoneNumber = []string{phone}
	}
	if role := strings.TrimSpace(input.Role); role != "" {
		params.PublicMetadata = map[string]any{"role": role}
	}

	user, err := s.Provider.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}

	now := models.Timestamp(s.now().UnixMilli())
	profile := s.profileFrom(user)
	profile.Status = models.UserStatusActive
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.Role == "" {
		profile.Role = strings.TrimSpace(input.Role)
	}

	logger.Info("Received user from identity provider", zap.String("user_id", user.ID))

	if err := s.mirror(ctx, "create", user.ID, func(ctx context.Context) error {
		return s.Store.Set(ctx, userPath(user.ID), profile)
	}); err != nil {
		return nil, s.compensate(ctx, "create", user.ID, func(ctx context.Context) error {
			return s.Provider.DeleteUser(ctx, user.ID)
		}, err)
	}

	logger.Info("User mirrored", zap.String("user_id", user.ID))
	return &profile, nil
}

func (s *Service) mirroredProfiles(ctx context.Context) (map[string]models.UserProfile, error) {
	_, profiles, err := rtdb.ChildrenInto[models.UserProfile](ctx, s.Store, rootUsers, rtdb.Query{}, func(key string, err error) {
		s.logger().Warn("Skipping malformed user profile", zap.String("user_id", key), zap.Error(err))
	})
	return profiles, err
}

// overlay prefers the mirror for fields the provider does not track.
func overlay(profile *models.UserProfile, mirrored models.UserProfile) {
	if mirrored.Role != "" {
		profile.Role = mirrored.Role
	}
	profile.BannedAt = mirrored.BannedAt
	profile.BanReason = mirrored.BanReason
	profile.UnbannedAt = mirrored.UnbannedAt
	profile.UnbanReason = mirrored.UnbanReason
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]models.UserProfile, error) {
	users, err := s.Provider.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	mirrored, err := s.mirroredProfiles(ctx)
	if err != nil {
		return nil, common.NewUpstreamError("Error fetching users", err)
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		p := s.profileFrom(&users[i])
		if m, ok := mirrored[p.ClerkID]; ok {
			overlay(&p, m)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	user, err := s.Provider.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := s.profileFrom(user)

	var mirrored models.UserProfile
	found, err := rtdb.GetInto(ctx, s.Store, userPath(userID), &mirrored)
	if err != nil {
		return nil, common.NewUpstreamError("Error fetching user", err)
	}
	if found {
		overlay(&profile, mirrored)
	}
	return &profile, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	if err := s.Provider.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if err := s.mirror(ctx, "delete", userID, func(ctx context.Context) error {
		return s.Store.Update(ctx, "", map[string]any{
			userPath(userID):         nil,
			loginHistoryPath(userID): nil,
		})
	}); err != nil {
		s.logger().Error("User deleted at provider but mirror still present", zap.String("user_id", userID), zap.Error(err))
		return common.NewUpstreamError("User deleted, but the local record could not be removed", err)
	}

	s.logger().Info("User deleted", zap.String("user_id", userID))
	return nil
}

// setBanState flips the provider ban flag and records it in the mirror.
func (s *Service) setBanState(ctx context.Context, userID, reason string, ban bool) (*models.UserProfile, error) {
	logger := s.logger()

	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	op, apply, undo := "ban", s.Provider.BanUser, s.Provider.UnbanUser
	if !ban {
		op, apply, undo = "unban", s.Provider.UnbanUser, s.Provider.BanUser
	}

	user, err := apply(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := s.profileFrom(user)

	var mirrored models.UserProfile
	found, err := rtdb.GetInto(ctx, s.Store, userPath(userID), &mirrored)
	if err != nil {
		return nil, s.compensate(ctx, op, userID, func(ctx context.Context) error {
			_, err := undo(ctx, userID)
			return err
		}, err)
	}
	if !found {
		logger.Warn("No mirrored profile for user, provider state only", zap.String("op", op), zap.String("user_id", userID))
		return &profile, nil
	}

	now := models.Timestamp(s.now().UnixMilli())
	fields := map[string]any{"updatedAt": now}
	if ban {
		fields["status"] = models.UserStatusBanned
		fields["bannedAt"] = now
		fields["banReason"] = reason
		mirrored.Status, mirrored.BannedAt, mirrored.BanReason = models.UserStatusBanned, now, reason
	} else {
		fields["status"] = models.UserStatusActive
		fields["unbannedAt"] = now
		fields["unbanReason"] = reason
		mirrored.Status, mirrored.UnbannedAt, mirrored.UnbanReason = models.UserStatusActive, now, reason
	}
	mirrored.UpdatedAt = now

	if err := s.mirror(ctx, op, userID, func(ctx context.Context) error {
		return s.Store.Update(ctx, userPath(userID), fields)
	}); err != nil {
		return nil, s.compensate(ctx, op, userID, func(ctx context.Context) error {
			_, err := undo(ctx, userID)
			return err
		}, err)
	}

	overlay(&profile, mirrored)
	profile.Status = mirrored.Status
	logger.Info("User ban state changed", zap.String("op", op), zap.String("user_id", userID))
	return &profile, nil
}

func (s *Service) BanUser(ctx context.Context, userID, reason string) (*models.UserProfile, error) {
	return s.setBanState(ctx, userID, reason, true)
}

func (s *Service) UnbanUser(ctx context.Context, userID, reason string) (*models.UserProfile, error) {
	return s.setBanState(ctx, userID, reason, false)
}

func (s *Service) RecordLogin(ctx context.Context, userID string, record *models.LoginRecord) (*models.LoginRecord, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	entry := models.LoginRecord{}
	if record != nil {
		entry = *record
	}
	entry.Key = ""
	if entry.Timestamp <= 0 {
		entry.Timestamp = models.Timestamp(s.now().UnixMilli())
	}
	if entry.LoginMethod == "" {
		entry.LoginMethod = DefaultLoginMethod
	}

	key, err := s.Store.Push(ctx, loginHistoryPath(userID), entry)
	if err != nil {
		return nil, common.NewUpstreamError("Error recording login", err)
	}
	entry.Key = key

	s.logger().Info("Login recorded", zap.String("user_id", userID), zap.String("key", key))
	return &entry, nil
}

func (s *Service) GetLoginHistory(ctx context.Context, userID string, limit int, startAfter string) ([]models.LoginRecord, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLoginHistoryLimit
	}

	nodes, err := s.Store.Children(ctx, loginHistoryPath(userID), rtdb.Query{EndBefore: strings.TrimSpace(startAfter), LimitToLast: limit})
	if err != nil {
		return nil, common.NewUpstreamError("Error fetching login history", err)
	}

	records := make([]models.LoginRecord, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		var r models.LoginRecord
		if err := nodes[i].Value.Unmarshal(&r); err != nil {
			s.logger().Warn("Skipping malformed login record", zap.String("user_id", userID), zap.String("key", nodes[i].Key), zap.Error(err))
			continue
		}
		r.Key = nodes[i].Key
		records = append(records, r)
	}
	return records, nil
}
