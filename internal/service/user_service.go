package service

import (
	"strings"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// UserService 用户业务服务，承担注册、登录校验与资料维护
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// ProfileUpdateInput 资料更新输入
type ProfileUpdateInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Register 注册新用户
// 字符集校验先于唯一性校验，两类失败返回不同的错误。
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidCredentials
	}

	count, err := s.userRepo.CountByUsername(username, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate 按用户名与密码校验身份
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID 按 ID 获取用户
func (s *UserService) GetByID(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// GetByUsername 按用户名获取用户
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 更新用户资料
// 修改对象始终是会话用户本人，路径里的用户名参数不参与目标选择。
func (s *UserService) UpdateProfile(userID uint, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	username := strings.TrimSpace(input.Username)
	if username != "" && username != user.Username {
		if err := ValidateUsername(username); err != nil {
			return nil, err
		}
		count, err := s.userRepo.CountByUsername(username, &user.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
		user.Username = username
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = strings.TrimSpace(input.Email)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
