package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"backend/internal/app/config"
	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/redis"
	"backend/internal/app/repository"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeTTL          = 15 * time.Minute
	codeResendPeriod = 60 * time.Second
)

type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Config      *config.Config
}

func NewAuthHandler(r *repository.Repository, redisClient *redis.Client, config *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Config:      config,
	}
}

// generateSalt возвращает случайную соль в hex
func generateSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashPassword хеширует пароль с солью через bcrypt
func hashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+salt)) == nil
}

// generateVerificationCode возвращает четырёхзначный код
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// sendCodeEmail имитирует отправку письма с кодом.
// TODO: подключить SMTP, когда появится почтовый сервис.
func sendCodeEmail(email, code string) {
	logrus.WithField("email", email).Infof("verification code issued: %s", code)
}

func (h *AuthHandler) issueToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "print-marketplace",
		},
		UserID: user.ID,
		Role:   role.FromString(user.Role),
	})

	return token.SignedString([]byte(h.Config.JWT.Token))
}

func userToResponse(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание нового пользователя с отправкой кода подтверждения на email
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Проверяем существует ли пользователь
	exists, _ := h.Repository.UserExistsByEmail(request.Email)
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("пользователь с таким email уже существует"))
		return
	}

	salt, err := generateSalt()
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	hashedPassword, err := hashPassword(request.Password, salt)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	user, err := h.Repository.CreateUser(request.Email, hashedPassword, salt)
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("ошибка регистрации пользователя"))
		return
	}

	// Отправляем код подтверждения email
	code, err := generateVerificationCode()
	if err == nil {
		if err := h.Repository.SetVerificationCode(user.ID, code, time.Now().Add(codeTTL)); err != nil {
			logrus.Error("Error saving verification code: ", err)
		} else {
			sendCodeEmail(user.Email, code)
		}
	}

	// Генерируем JWT токен сразу при регистрации
	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "пользователь успешно зарегистрирован",
		"user":    userToResponse(user),
		"data":    accessToken, // JWT токен
	})
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация пользователя с возвратом JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.Repository.GetUserByEmail(request.Email)
	if err != nil || !checkPassword(user.PasswordHash, request.Password, user.PasswordSalt) {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("неверный email или пароль"))
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "пользователь успешно авторизован",
		"user_id":    user.ID,
		"role":       user.Role,
		"token":      accessToken,
		"email":      user.Email,
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
		"token_type": "Bearer",
	})
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса пользователя с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	// Получение токена из заголовка
	tokenString := ctx.GetHeader("Authorization")
	if tokenString == "" {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("authorization header missing"))
		return
	}

	// Удаление префикса "Bearer "
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	// Парсинг токена для получения TTL
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})

	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid token claims"))
		return
	}

	// Вычисление TTL до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		// Токен уже истек
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "пользователь успешно вышел из системы",
		})
		return
	}

	// Добавление токена в blacklist
	err = h.RedisClient.WriteJWTToBlacklist(context.Background(), tokenString, ttl)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "пользователь успешно вышел из системы",
	})
}

// GetUserProfile получение профиля пользователя
// @Summary Получение профиля пользователя
// @Description Возвращает информацию о текущем пользователе
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("пользователь не авторизован"))
		return
	}

	user, err := h.Repository.GetUserByID(userID.(uint))
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("пользователь не найден"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   userToResponse(user),
	})
}

// currentUser достаёт пользователя по ID из контекста
func (h *AuthHandler) currentUser(ctx *gin.Context) (*ds.User, error) {
	userID, exists := ctx.Get("userID")
	if !exists {
		return nil, errors.New("пользователь не авторизован")
	}
	return h.Repository.GetUserByID(userID.(uint))
}

// checkResendThrottle следит, чтобы коды не запрашивались чаще раза в минуту
func checkResendThrottle(user *ds.User) error {
	if user.LastCodeRequestAt != nil && time.Since(*user.LastCodeRequestAt) < codeResendPeriod {
		return errors.New("код уже отправлен, повторите попытку через минуту")
	}
	return nil
}

// SendVerificationCode повторная отправка кода подтверждения
// @Summary Отправка кода подтверждения email
// @Description Генерирует и отправляет новый код, не чаще раза в минуту
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /api/auth/send-code [post]
func (h *AuthHandler) SendVerificationCode(ctx *gin.Context) {
	user, err := h.currentUser(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	if user.EmailVerified {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("email уже подтверждён"))
		return
	}

	if err := checkResendThrottle(user); err != nil {
		h.errorHandler(ctx, http.StatusTooManyRequests, err)
		return
	}

	code, err := generateVerificationCode()
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	if err := h.Repository.SetVerificationCode(user.ID, code, time.Now().Add(codeTTL)); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	sendCodeEmail(user.Email, code)

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "код подтверждения отправлен",
	})
}

// VerifyEmail подтверждение email по коду
// @Summary Подтверждение email
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyEmailRequest true "Код из письма"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(ctx *gin.Context) {
	var request dto.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.currentUser(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	if user.EmailVerified {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("email уже подтверждён"))
		return
	}
	if user.EmailVerificationCode == nil || *user.EmailVerificationCode != request.Code {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("неверный код подтверждения"))
		return
	}
	if user.EmailVerificationCodeExpiresAt != nil && time.Now().After(*user.EmailVerificationCodeExpiresAt) {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("код подтверждения истёк"))
		return
	}

	if err := h.Repository.MarkEmailVerified(user.ID); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "email подтверждён",
	})
}

// RequestEmailChange запрос на смену email, код уходит на новый адрес
// @Summary Запрос на смену email
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangeEmailRequest true "Новый email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /api/auth/change-email [post]
func (h *AuthHandler) RequestEmailChange(ctx *gin.Context) {
	var request dto.ChangeEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.currentUser(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	exists, _ := h.Repository.UserExistsByEmail(request.NewEmail)
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("пользователь с таким email уже существует"))
		return
	}

	if err := checkResendThrottle(user); err != nil {
		h.errorHandler(ctx, http.StatusTooManyRequests, err)
		return
	}

	code, err := generateVerificationCode()
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	if err := h.Repository.SetNewEmailCode(user.ID, request.NewEmail, code); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	sendCodeEmail(request.NewEmail, code)

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "код подтверждения отправлен на новый адрес",
	})
}

// ConfirmEmailChange подтверждение смены email по коду
// @Summary Подтверждение смены email
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyEmailRequest true "Код из письма"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth/confirm-email-change [post]
func (h *AuthHandler) ConfirmEmailChange(ctx *gin.Context) {
	var request dto.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.currentUser(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	if user.NewEmail == nil || user.NewEmailVerificationCode == nil {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("нет ожидающей смены email"))
		return
	}
	if *user.NewEmailVerificationCode != request.Code {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("неверный код подтверждения"))
		return
	}

	if err := h.Repository.ConfirmNewEmail(user.ID); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "email изменён",
	})
}

// ChangePassword смена пароля
// @Summary Смена пароля
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Старый и новый пароль"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(ctx *gin.Context) {
	var request dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.currentUser(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	if !checkPassword(user.PasswordHash, request.OldPassword, user.PasswordSalt) {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("неверный текущий пароль"))
		return
	}

	salt, err := generateSalt()
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	hashedPassword, err := hashPassword(request.NewPassword, salt)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	if err := h.Repository.UpdatePassword(user.ID, hashedPassword, salt); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "пароль изменён",
	})
}

// errorHandler централизованная обработка ошибок
func (h *AuthHandler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}
