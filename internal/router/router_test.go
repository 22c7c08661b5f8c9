package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type routerFixture struct {
	engine *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	cfg    *config.Config
}

func setupRouterTest(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		UserJWT: config.JWTConfig{
			SecretKey:   "router-integration-secret",
			ExpireHours: 1,
			CookieName:  "blogicum_session",
		},
		Captcha: config.CaptchaConfig{Provider: constants.CaptchaProviderNone},
		Blog:    config.BlogConfig{PageSize: 10},
	}
	container := provider.NewContainer(cfg)
	engine := SetupRouter(cfg, container)

	return &routerFixture{
		engine: engine,
		db:     db,
		auth:   container.AuthService,
		cfg:    cfg,
	}
}

func (f *routerFixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "hash"}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func (f *routerFixture) createCategory(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category := models.Category{Title: slug, Description: "d", Slug: slug, IsPublished: published}
	if err := f.db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return &category
}

func (f *routerFixture) createPost(t *testing.T, authorID uint, categoryID *uint, title string, pubDate time.Time, published bool) *models.Post {
	t.Helper()
	post := models.Post{
		Title:       title,
		Text:        "text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	if err := f.db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return &post
}

func (f *routerFixture) sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, _, err := f.auth.GenerateSessionToken(user)
	if err != nil {
		t.Fatalf("generate session token failed: %v", err)
	}
	return &http.Cookie{Name: f.cfg.UserJWT.CookieName, Value: token}
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func formRequest(method, target string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestAnonymousPostDetailWithCommentsAsc(t *testing.T) {
	f := setupRouterTest(t)
	author := f.createUser(t, "detail_author")
	commenter := f.createUser(t, "detail_commenter")
	category := f.createCategory(t, "detail-cat", true)
	post := f.createPost(t, author.ID, &category.ID, "публичный пост", time.Now().Add(-time.Hour), true)

	for i, text := range []string{"первый", "второй", "третий"} {
		comment := models.Comment{
			Text:      text,
			PostID:    post.ID,
			AuthorID:  commenter.ID,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := f.db.Create(&comment).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	w := f.do(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%d/", post.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous detail want 200 got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Comments []struct {
				Text string `json:"text"`
			} `json:"comments"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(resp.Data.Comments) != 3 {
		t.Fatalf("want 3 comments got %d", len(resp.Data.Comments))
	}
	for i, want := range []string{"первый", "второй", "третий"} {
		if resp.Data.Comments[i].Text != want {
			t.Fatalf("comments out of creation order: %+v", resp.Data.Comments)
		}
	}
}

func TestHiddenPostDetailIsNotFoundForStranger(t *testing.T) {
	f := setupRouterTest(t)
	author := f.createUser(t, "hidden_author")
	stranger := f.createUser(t, "hidden_stranger")
	category := f.createCategory(t, "hidden-cat", true)
	draft := f.createPost(t, author.ID, &category.ID, "черновик", time.Now().Add(-time.Hour), false)

	target := fmt.Sprintf("/posts/%d/", draft.ID)

	w := f.do(httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("anonymous want 404 got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(f.sessionCookie(t, stranger))
	if w := f.do(req); w.Code != http.StatusNotFound {
		t.Fatalf("stranger want 404 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(f.sessionCookie(t, author))
	if w := f.do(req); w.Code != http.StatusOK {
		t.Fatalf("author want 200 got %d", w.Code)
	}
}

func TestNonOwnerPostEditRedirectsToDetail(t *testing.T) {
	f := setupRouterTest(t)
	owner := f.createUser(t, "post_owner")
	intruder := f.createUser(t, "post_intruder")
	category := f.createCategory(t, "edit-cat", true)
	post := f.createPost(t, owner.ID, &category.ID, "исходный заголовок", time.Now().Add(-time.Hour), true)

	form := url.Values{}
	form.Set("title", "подменённый заголовок")
	form.Set("text", "подменённый текст")
	form.Set("pub_date", time.Now().Format("2006-01-02 15:04:05"))

	w := f.do(formRequest(http.MethodPost, fmt.Sprintf("/posts/%d/edit/", post.ID), form, f.sessionCookie(t, intruder)))
	if w.Code != http.StatusFound {
		t.Fatalf("non-owner edit want 302 got %d: %s", w.Code, w.Body.String())
	}
	if location := w.Header().Get("Location"); location != fmt.Sprintf("/posts/%d/", post.ID) {
		t.Fatalf("redirect target want post detail, got %s", location)
	}

	var unchanged models.Post
	if err := f.db.First(&unchanged, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if unchanged.Title != "исходный заголовок" {
		t.Fatalf("post must stay unchanged, got title %q", unchanged.Title)
	}
}

func TestNonOwnerCommentEditIsForbidden(t *testing.T) {
	f := setupRouterTest(t)
	owner := f.createUser(t, "comment_owner")
	intruder := f.createUser(t, "comment_intruder")
	category := f.createCategory(t, "forbid-cat", true)
	post := f.createPost(t, owner.ID, &category.ID, "пост", time.Now().Add(-time.Hour), true)

	comment := models.Comment{Text: "исходный текст", PostID: post.ID, AuthorID: owner.ID}
	if err := f.db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	form := url.Values{}
	form.Set("text", "подменённый текст")

	target := fmt.Sprintf("/posts/%d/edit_comment/%d/edit/", post.ID, comment.ID)
	w := f.do(formRequest(http.MethodPost, target, form, f.sessionCookie(t, intruder)))
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-owner comment edit want 403 got %d: %s", w.Code, w.Body.String())
	}

	var unchanged models.Comment
	if err := f.db.First(&unchanged, comment.ID).Error; err != nil {
		t.Fatalf("reload comment failed: %v", err)
	}
	if unchanged.Text != "исходный текст" {
		t.Fatalf("comment must stay unchanged, got %q", unchanged.Text)
	}
}

func TestAnonymousFormRouteRedirectsToLogin(t *testing.T) {
	f := setupRouterTest(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/posts/create/", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("want 302 got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Location"), "/auth/login/?next=") {
		t.Fatalf("redirect want login page, got %s", w.Header().Get("Location"))
	}
}

func TestRegistrationRejectsCyrillicUsername(t *testing.T) {
	f := setupRouterTest(t)

	form := url.Values{}
	form.Set("username", "иван_петров")
	form.Set("password", "secret-pass")

	w := f.do(formRequest(http.MethodPost, "/auth/registration/", form, nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("cyrillic username want 400 got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := f.db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected registration must not persist a user, count=%d", count)
	}
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	f := setupRouterTest(t)

	form := url.Values{}
	form.Set("username", "new_blogger")
	form.Set("password", "strong-enough-pass")
	form.Set("email", "blogger@example.com")

	w := f.do(formRequest(http.MethodPost, "/auth/registration/", form, nil))
	if w.Code != http.StatusFound {
		t.Fatalf("registration want 302 got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Location") != "/" {
		t.Fatalf("registration redirect want /, got %s", w.Header().Get("Location"))
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), f.cfg.UserJWT.CookieName+"=") {
		t.Fatalf("registration must issue a session cookie, got %s", w.Header().Get("Set-Cookie"))
	}

	login := url.Values{}
	login.Set("username", "new_blogger")
	login.Set("password", "wrong-pass")
	if w := f.do(formRequest(http.MethodPost, "/auth/login/", login, nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password want 401 got %d", w.Code)
	}

	login.Set("password", "strong-enough-pass")
	w = f.do(formRequest(http.MethodPost, "/auth/login/?next=%2Fposts%2Fcreate%2F", login, nil))
	if w.Code != http.StatusFound {
		t.Fatalf("login want 302 got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Location") != "/posts/create/" {
		t.Fatalf("login redirect want next target, got %s", w.Header().Get("Location"))
	}
}

func TestIndexHidesInvisiblePosts(t *testing.T) {
	f := setupRouterTest(t)
	author := f.createUser(t, "index_author")
	visible := f.createCategory(t, "visible", true)
	hidden := f.createCategory(t, "hidden", false)
	past := time.Now().Add(-time.Hour)

	f.createPost(t, author.ID, &visible.ID, "видимый", past, true)
	f.createPost(t, author.ID, &visible.ID, "черновик", past, false)
	f.createPost(t, author.ID, &visible.ID, "будущее", time.Now().Add(time.Hour), true)
	f.createPost(t, author.ID, &hidden.ID, "в скрытой категории", past, true)

	w := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("index want 200 got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Posts []struct {
				Title string `json:"title"`
			} `json:"posts"`
		} `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Pagination.Total != 1 || len(resp.Data.Posts) != 1 || resp.Data.Posts[0].Title != "видимый" {
		t.Fatalf("index must hide invisible posts, got %s", w.Body.String())
	}
}

func TestProfileEditTargetsSessionUser(t *testing.T) {
	f := setupRouterTest(t)
	sessionUser := f.createUser(t, "session_user")
	victim := f.createUser(t, "victim_user")

	form := url.Values{}
	form.Set("username", "session_user_v2")
	form.Set("first_name", "Анна")

	// 路径指向别人的用户名，修改对象仍是会话用户
	target := fmt.Sprintf("/profile/%s/edit/", victim.Username)
	w := f.do(formRequest(http.MethodPost, target, form, f.sessionCookie(t, sessionUser)))
	if w.Code != http.StatusFound {
		t.Fatalf("profile edit want 302 got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Location") != "/" {
		t.Fatalf("profile edit redirect want /, got %s", w.Header().Get("Location"))
	}

	var updated, untouched models.User
	if err := f.db.First(&updated, sessionUser.ID).Error; err != nil {
		t.Fatalf("reload session user failed: %v", err)
	}
	if err := f.db.First(&untouched, victim.ID).Error; err != nil {
		t.Fatalf("reload victim failed: %v", err)
	}
	if updated.Username != "session_user_v2" || updated.FirstName != "Анна" {
		t.Fatalf("session user must be updated, got %+v", updated)
	}
	if untouched.Username != "victim_user" || untouched.FirstName != "" {
		t.Fatalf("path user must stay untouched, got %+v", untouched)
	}
}

func TestCategoryPageHiddenCategoryIs404(t *testing.T) {
	f := setupRouterTest(t)
	f.createCategory(t, "draft-cat", false)

	if w := f.do(httptest.NewRequest(http.MethodGet, "/category/draft-cat/", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("hidden category want 404 got %d", w.Code)
	}
	if w := f.do(httptest.NewRequest(http.MethodGet, "/category/ghost/", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("missing category want 404 got %d", w.Code)
	}
}

func TestIndexPageSizeFromConfig(t *testing.T) {
	f := setupRouterTest(t)
	f.cfg.Blog.PageSize = 2
	author := f.createUser(t, "paging_author")
	category := f.createCategory(t, "paging-cat", true)
	for i := 0; i < 5; i++ {
		f.createPost(t, author.ID, &category.ID, fmt.Sprintf("пост %d", i), time.Now().Add(-time.Duration(i+1)*time.Hour), true)
	}

	w := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("index want 200 got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Posts []struct {
				Title string `json:"title"`
			} `json:"posts"`
		} `json:"data"`
		Pagination struct {
			Total    int64 `json:"total"`
			PageSize int   `json:"page_size"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(resp.Data.Posts) != 2 || resp.Pagination.Total != 5 {
		t.Fatalf("configured page size must drive listings, got %d posts total %d", len(resp.Data.Posts), resp.Pagination.Total)
	}
}

func TestNonOwnerPostEditWithBadFormStillRedirects(t *testing.T) {
	f := setupRouterTest(t)
	owner := f.createUser(t, "form_owner")
	intruder := f.createUser(t, "form_intruder")
	category := f.createCategory(t, "form-cat", true)
	post := f.createPost(t, owner.ID, &category.ID, "пост", time.Now().Add(-time.Hour), true)

	// 表单无效也不该暴露校验结果，归属检查先于绑定
	form := url.Values{}
	form.Set("title", "x")
	form.Set("text", "x")
	form.Set("pub_date", "definitely-not-a-date")

	w := f.do(formRequest(http.MethodPost, fmt.Sprintf("/posts/%d/edit/", post.ID), form, f.sessionCookie(t, intruder)))
	if w.Code != http.StatusFound {
		t.Fatalf("non-owner with bad form want 302 got %d: %s", w.Code, w.Body.String())
	}
	if location := w.Header().Get("Location"); location != fmt.Sprintf("/posts/%d/", post.ID) {
		t.Fatalf("redirect target want post detail, got %s", location)
	}

	// 作者提交同样的数据才会看到 400
	w = f.do(formRequest(http.MethodPost, fmt.Sprintf("/posts/%d/edit/", post.ID), form, f.sessionCookie(t, owner)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("owner with bad pub_date want 400 got %d: %s", w.Code, w.Body.String())
	}
}
