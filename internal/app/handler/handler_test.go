package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/app/ds"
	"backend/internal/app/repository"
	"backend/internal/app/role"
)

var handlerTestDBSeq int

// newTestHandler поднимает обработчики на sqlite в памяти,
// внешние зависимости (minio, брокер) не подключаются
func newTestHandler(t *testing.T) (*APIHandler, *repository.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerTestDBSeq++
	dbName := fmt.Sprintf("file:handlerdb%d?mode=memory&cache=shared", handlerTestDBSeq)
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return &APIHandler{Repository: repo}, repo
}

var handlerTestUserSeq int

func newHandlerTestUser(t *testing.T, r *repository.Repository) *ds.User {
	t.Helper()
	handlerTestUserSeq++
	user, err := r.CreateUser(fmt.Sprintf("handler%d@example.com", handlerTestUserSeq), "hash", "salt")
	require.NoError(t, err)
	return user
}

// seedHandlerLocation создаёт минимальную иерархию регион -> город
func seedHandlerLocation(t *testing.T, r *repository.Repository) (regionID, cityID uint) {
	t.Helper()

	regions := &ds.Dictionary{Name: ds.DictionaryRegions}
	require.NoError(t, r.CreateDictionary(regions))
	cities := &ds.Dictionary{Name: ds.DictionaryCities}
	require.NoError(t, r.CreateDictionary(cities))

	region := &ds.DictionaryItem{DictionaryID: regions.ID, Value: "Московская область", IsActive: true}
	require.NoError(t, r.CreateDictionaryItem(region))
	city := &ds.DictionaryItem{DictionaryID: cities.ID, Value: "Москва", ParentID: &region.ID, IsActive: true}
	require.NoError(t, r.CreateDictionaryItem(city))

	return region.ID, city.ID
}

// newAuthedContext собирает gin-контекст от имени авторизованного пользователя
func newAuthedContext(t *testing.T, userID uint, method string, body interface{}, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", userID)
	c.Set("userRole", role.User)
	c.Params = params

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	c.Request = httptest.NewRequest(method, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func idParam(name string, id uint) gin.Param {
	return gin.Param{Key: name, Value: strconv.FormatUint(uint64(id), 10)}
}
