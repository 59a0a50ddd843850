package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cabin-backend/models"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB        *gorm.DB
	Store     ObjectStore
	Cache     *ResourceCache
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, store ObjectStore, cache *ResourceCache, secret []byte) *AuthService {
	return &AuthService{
		DB:        db,
		Store:     store,
		Cache:     cache,
		JWTSecret: secret,
		TokenTTL:  24 * time.Hour,
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func isDuplicateKey(err error) bool {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *AuthService) SignUp(fullName, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("password could not be hashed: %v", err)
		return models.User{}, ErrPersistence
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := user.SetMeta(models.UserMetadata{FullName: fullName}); err != nil {
		return models.User{}, ErrPersistence
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return models.User{}, ErrEmailTaken
		}
		log.Printf("user could not be created: %v", err)
		return models.User{}, ErrPersistence
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token. Unknown
// email and wrong password collapse into one error.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login lookup failed: %v", err)
		}
		return models.User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		log.Printf("session token could not be issued: %v", err)
		return models.User{}, "", ErrSession
	}
	s.Cache.Set(userCacheKey(user.ID), user)
	return user, token, nil
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

func (s *AuthService) parseToken(raw string) (uint, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return 0, errors.New("invalid token")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q", sub)
	}
	return uint(id), nil
}

// CurrentUser resolves a bearer token to the full user row. An absent token
// is not an error: there is simply no session, and the result is nil. A
// token that fails verification is ErrSession.
func (s *AuthService) CurrentUser(token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}
	id, err := s.parseToken(token)
	if err != nil {
		log.Printf("session rejected: %v", err)
		return nil, ErrSession
	}

	if v, ok := s.Cache.Get(userCacheKey(id)); ok {
		if user, ok := v.(models.User); ok {
			return &user, nil
		}
	}

	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("user %d could not be loaded: %v", id, err)
		}
		return nil, ErrLookup
	}
	s.Cache.Set(userCacheKey(id), user)
	return &user, nil
}

// Logout evicts the cached user; tokens are stateless, expiry bounds the
// session itself.
func (s *AuthService) Logout(userID uint) {
	s.Cache.Invalidate(userCacheKey(userID))
}

// ProfileUpdate carries the optional profile changes; AvatarData is set
// only when a new avatar file was selected.
type ProfileUpdate struct {
	Password   string
	FullName   string
	AvatarData []byte
}

// UpdateCurrentUser applies the password/name change first, then, only when
// an avatar blob was supplied, uploads it and writes the URL in a second
// update. The two writes are not transactional: a failed avatar upload
// leaves the first change persisted.
func (s *AuthService) UpdateCurrentUser(userID uint, update ProfileUpdate) (models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("user %d could not be loaded: %v", userID, err)
		}
		return models.User{}, ErrLookup
	}

	meta := user.Meta()
	updates := map[string]interface{}{}
	if update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("password could not be hashed: %v", err)
			return models.User{}, ErrMutationRejected
		}
		updates["password_hash"] = string(hash)
	}
	if update.FullName != "" {
		meta.FullName = update.FullName
		if err := user.SetMeta(meta); err != nil {
			return models.User{}, ErrMutationRejected
		}
		updates["metadata"] = user.Metadata
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			log.Printf("user %d could not be updated: %v", userID, err)
			return models.User{}, ErrMutationRejected
		}
		s.Cache.Invalidate(userCacheKey(userID))
	}

	if len(update.AvatarData) == 0 {
		return user, nil
	}

	name := fmt.Sprintf("avatar-%d-%s", userID, uuid.NewString())
	if err := s.Store.Upload(BucketAvatars, name, update.AvatarData); err != nil {
		log.Printf("avatar could not be uploaded for user %d: %v", userID, err)
		return models.User{}, ErrImageUpload
	}

	meta.Avatar = s.Store.PublicURL(BucketAvatars, name)
	if err := user.SetMeta(meta); err != nil {
		return models.User{}, ErrMutationRejected
	}
	if err := s.DB.Model(&user).Update("metadata", user.Metadata).Error; err != nil {
		log.Printf("avatar URL could not be saved for user %d: %v", userID, err)
		return models.User{}, ErrMutationRejected
	}
	s.Cache.Invalidate(userCacheKey(userID))

	if err := s.DB.First(&user, userID).Error; err != nil {
		return models.User{}, ErrLookup
	}
	return user, nil
}
