package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCannotFollowSelf     = errors.New("cannot follow yourself")
	ErrAlreadyFollowing     = errors.New("already following this user")
	ErrNotFollowing         = errors.New("not following this user")
	ErrCannotLikeOwnMessage = errors.New("cannot like your own message")
	ErrAlreadyLiked         = errors.New("message already liked")
	ErrNotLiked             = errors.New("message not liked")
)

// SocialService manages the follows and likes relations.
type SocialService struct{}

// NewSocialService creates a new SocialService.
func NewSocialService() *SocialService {
	return &SocialService{}
}

func (s *SocialService) requireUser(uow *repository.UnitOfWork, id uint64) error {
	if _, err := uow.Users().FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func (s *SocialService) requireMessage(uow *repository.UnitOfWork, id uint64) (*models.Message, error) {
	msg, err := uow.Messages().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return msg, nil
}

// IsFollowing reports whether userID follows otherID.
func (s *SocialService) IsFollowing(uow *repository.UnitOfWork, userID, otherID uint64) (bool, error) {
	return uow.Follows().IsFollowing(userID, otherID)
}

// IsFollowedBy reports whether otherID follows userID.
func (s *SocialService) IsFollowedBy(uow *repository.UnitOfWork, userID, otherID uint64) (bool, error) {
	return uow.Follows().IsFollowedBy(userID, otherID)
}

// Follow makes followerID follow followedID.
func (s *SocialService) Follow(uow *repository.UnitOfWork, followerID, followedID uint64) error {
	if followerID == followedID {
		return ErrCannotFollowSelf
	}
	if err := s.requireUser(uow, followedID); err != nil {
		return err
	}

	following, err := uow.Follows().IsFollowing(followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to check follow: %w", err)
	}
	if following {
		return ErrAlreadyFollowing
	}

	follow := &models.Follow{
		UserFollowingID:     followerID,
		UserBeingFollowedID: followedID,
	}
	if err := uow.Follows().Create(follow); err != nil {
		return fmt.Errorf("failed to follow user: %w", repository.Classify(err))
	}
	return nil
}

// Unfollow removes the follow of followedID by followerID.
func (s *SocialService) Unfollow(uow *repository.UnitOfWork, followerID, followedID uint64) error {
	removed, err := uow.Follows().Delete(followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	if removed == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Following lists the users userID follows.
func (s *SocialService) Following(uow *repository.UnitOfWork, userID uint64, page utils.PaginationParams) ([]models.User, error) {
	if err := s.requireUser(uow, userID); err != nil {
		return nil, err
	}

	users, err := uow.Follows().Following(userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// Followers lists the users following userID.
func (s *SocialService) Followers(uow *repository.UnitOfWork, userID uint64, page utils.PaginationParams) ([]models.User, error) {
	if err := s.requireUser(uow, userID); err != nil {
		return nil, err
	}

	users, err := uow.Follows().Followers(userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

// Like records that userID likes messageID.
func (s *SocialService) Like(uow *repository.UnitOfWork, userID, messageID uint64) error {
	msg, err := s.requireMessage(uow, messageID)
	if err != nil {
		return err
	}
	if msg.IsOwnedBy(userID) {
		return ErrCannotLikeOwnMessage
	}

	liked, err := uow.Likes().Exists(userID, messageID)
	if err != nil {
		return fmt.Errorf("failed to check like: %w", err)
	}
	if liked {
		return ErrAlreadyLiked
	}

	if _, err := uow.Likes().Append(userID, messageID); err != nil {
		return fmt.Errorf("failed to like message: %w", repository.Classify(err))
	}
	return nil
}

// Unlike removes userID's like of messageID.
func (s *SocialService) Unlike(uow *repository.UnitOfWork, userID, messageID uint64) error {
	removed, err := uow.Likes().Remove(userID, messageID)
	if err != nil {
		return fmt.Errorf("failed to unlike message: %w", err)
	}
	if removed == 0 {
		return ErrNotLiked
	}
	return nil
}

// ToggleLike likes the message if userID does not like it yet and unlikes
// it otherwise. It reports whether the message is liked afterwards.
func (s *SocialService) ToggleLike(uow *repository.UnitOfWork, userID, messageID uint64) (bool, error) {
	msg, err := s.requireMessage(uow, messageID)
	if err != nil {
		return false, err
	}
	if msg.IsOwnedBy(userID) {
		return false, ErrCannotLikeOwnMessage
	}

	liked, err := uow.Likes().Exists(userID, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	if liked {
		if err := s.Unlike(uow, userID, messageID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := uow.Likes().Append(userID, messageID); err != nil {
		return false, fmt.Errorf("failed to like message: %w", repository.Classify(err))
	}
	return true, nil
}

// Likes lists the messages userID likes, in the order they were liked.
func (s *SocialService) Likes(uow *repository.UnitOfWork, userID uint64, page utils.PaginationParams) ([]models.Message, error) {
	if err := s.requireUser(uow, userID); err != nil {
		return nil, err
	}

	messages, err := uow.Likes().Messages(userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return messages, nil
}

// ReplaceLikes makes messageIDs the user's complete like collection. An
// empty list clears it.
func (s *SocialService) ReplaceLikes(uow *repository.UnitOfWork, userID uint64, messageIDs []uint64) error {
	if err := uow.Likes().Replace(userID, messageIDs); err != nil {
		return fmt.Errorf("failed to replace likes: %w", repository.Classify(err))
	}
	return nil
}

// Profile is a user together with the sizes of their relations.
type Profile struct {
	User           models.User
	MessageCount   int64
	FollowingCount int64
	FollowerCount  int64
	LikeCount      int64
	// ViewerFollows is true when the viewing user follows this user.
	ViewerFollows bool
}

// Profile loads userID's profile as seen by viewerID.
func (s *SocialService) Profile(uow *repository.UnitOfWork, userID, viewerID uint64) (*Profile, error) {
	user, err := uow.Users().FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile := &Profile{User: *user}
	if profile.MessageCount, err = uow.Messages().CountByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	if profile.FollowingCount, err = uow.Follows().CountFollowing(userID); err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}
	if profile.FollowerCount, err = uow.Follows().CountFollowers(userID); err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	if profile.LikeCount, err = uow.Likes().CountByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	if viewerID != 0 && viewerID != userID {
		if profile.ViewerFollows, err = uow.Follows().IsFollowing(viewerID, userID); err != nil {
			return nil, fmt.Errorf("failed to check follow: %w", err)
		}
	}

	return profile, nil
}
