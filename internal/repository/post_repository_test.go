package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	category := models.Category{Title: slug, Description: "d", Slug: slug, IsPublished: published}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return &category
}

func createPost(t *testing.T, db *gorm.DB, authorID uint, categoryID *uint, title string, pubDate time.Time, published bool) *models.Post {
	t.Helper()
	post := models.Post{
		Title:       title,
		Text:        "text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return &post
}

func TestPostRepositoryListCategoryJoin(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "join_author")
	visible := createCategory(t, db, "visible", true)
	hidden := createCategory(t, db, "hidden", false)
	past := time.Now().Add(-time.Hour)

	createPost(t, db, author.ID, &visible.ID, "in visible category", past, true)
	createPost(t, db, author.ID, &hidden.ID, "in hidden category", past, true)
	createPost(t, db, author.ID, nil, "without category", past, true)

	posts, total, err := repo.List(PostListFilter{
		PublishedOnly:            true,
		RequireCategoryPublished: true,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// 内连接同时排除隐藏分类与无分类文章
	if total != 1 || len(posts) != 1 || posts[0].Title != "in visible category" {
		t.Fatalf("unexpected join result: total=%d posts=%+v", total, posts)
	}

	posts, total, err = repo.List(PostListFilter{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(posts) != 3 {
		t.Fatalf("without the join all published posts must remain: total=%d", total)
	}
}

func TestPostRepositoryListPubDateBounds(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "bounds_author")

	cutoff := time.Now().Truncate(time.Second)
	createPost(t, db, author.ID, nil, "before", cutoff.Add(-time.Minute), true)
	exact := createPost(t, db, author.ID, nil, "exact", cutoff, true)
	createPost(t, db, author.ID, nil, "after", cutoff.Add(time.Minute), true)

	_, total, err := repo.List(PostListFilter{PubDateAtOrBefore: &cutoff})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("pub_date <= cutoff must include the boundary post, total=%d", total)
	}

	posts, total, err := repo.List(PostListFilter{PubDateBefore: &cutoff})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("pub_date < cutoff must exclude the boundary post, total=%d", total)
	}
	if posts[0].ID == exact.ID {
		t.Fatalf("boundary post leaked into strict filter")
	}
}

func TestPostRepositoryListPagination(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "page_author")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 25; i++ {
		createPost(t, db, author.ID, nil, fmt.Sprintf("post %02d", i), base.Add(time.Duration(i)*time.Minute), true)
	}

	posts, total, err := repo.List(PostListFilter{Page: 3, PageSize: 10, OrderBy: "posts.pub_date DESC"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total=25, got %d", total)
	}
	if len(posts) != 5 {
		t.Fatalf("expected 5 posts on the last page, got %d", len(posts))
	}
}

func TestPostRepositoryCommentCounts(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "counts_author")
	past := time.Now().Add(-time.Hour)

	first := createPost(t, db, author.ID, nil, "first", past, true)
	second := createPost(t, db, author.ID, nil, "second", past, true)
	third := createPost(t, db, author.ID, nil, "third", past, true)

	for i := 0; i < 3; i++ {
		comment := models.Comment{Text: "c", PostID: first.ID, AuthorID: author.ID}
		if err := db.Create(&comment).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}
	comment := models.Comment{Text: "c", PostID: second.ID, AuthorID: author.ID}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	counts, err := repo.CommentCounts([]uint{first.ID, second.ID, third.ID})
	if err != nil {
		t.Fatalf("comment counts failed: %v", err)
	}
	if counts[first.ID] != 3 || counts[second.ID] != 1 || counts[third.ID] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	empty, err := repo.CommentCounts(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty input must yield empty map: %v %+v", err, empty)
	}
}

func TestPostRepositoryDeleteRemovesComments(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createUser(t, db, "del_author")
	post := createPost(t, db, author.ID, nil, "doomed", time.Now().Add(-time.Hour), true)

	comment := models.Comment{Text: "orphan-to-be", PostID: post.ID, AuthorID: author.ID}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if err := repo.Delete(post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var comments int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if comments != 0 {
		t.Fatalf("comments must be deleted with the post, left=%d", comments)
	}
	got, err := repo.GetByID(post.ID)
	if err != nil || got != nil {
		t.Fatalf("deleted post must be gone: %v %+v", err, got)
	}
}

func TestCategoryRepositoryDeleteNullsPosts(t *testing.T) {
	db := setupRepositoryTest(t)
	categoryRepo := NewCategoryRepository(db)
	postRepo := NewPostRepository(db)
	author := createUser(t, db, "null_author")
	category := createCategory(t, db, "doomed-cat", true)
	post := createPost(t, db, author.ID, &category.ID, "survivor", time.Now().Add(-time.Hour), true)

	if err := categoryRepo.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	got, err := postRepo.GetByID(post.ID)
	if err != nil {
		t.Fatalf("get post failed: %v", err)
	}
	if got == nil {
		t.Fatalf("post must survive category deletion")
	}
	if got.CategoryID != nil {
		t.Fatalf("category reference must be cleared, got: %v", *got.CategoryID)
	}
}

func TestUserRepositoryDeleteCascades(t *testing.T) {
	db := setupRepositoryTest(t)
	userRepo := NewUserRepository(db)
	author := createUser(t, db, "cascade_author")
	other := createUser(t, db, "cascade_other")
	past := time.Now().Add(-time.Hour)

	authorPost := createPost(t, db, author.ID, nil, "author post", past, true)
	otherPost := createPost(t, db, other.ID, nil, "other post", past, true)

	// 他人在作者文章下的评论、作者在他人文章下的评论都要被级联清理
	for _, comment := range []models.Comment{
		{Text: "by other on author post", PostID: authorPost.ID, AuthorID: other.ID},
		{Text: "by author on other post", PostID: otherPost.ID, AuthorID: author.ID},
	} {
		if err := db.Create(&comment).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	if err := userRepo.Delete(author.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	var posts, comments int64
	if err := db.Model(&models.Post{}).Count(&posts).Error; err != nil {
		t.Fatalf("count posts failed: %v", err)
	}
	if err := db.Model(&models.Comment{}).Count(&comments).Error; err != nil {
		t.Fatalf("count comments failed: %v", err)
	}
	if posts != 1 {
		t.Fatalf("only the other user's post must remain, posts=%d", posts)
	}
	if comments != 0 {
		t.Fatalf("all comments tied to the deleted user must be gone, comments=%d", comments)
	}
}

func TestUserRepositoryCountByUsername(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)
	user := createUser(t, db, "unique_name")

	count, err := repo.CountByUsername("unique_name", nil)
	if err != nil || count != 1 {
		t.Fatalf("expected count=1, got %d (%v)", count, err)
	}
	count, err = repo.CountByUsername("unique_name", &user.ID)
	if err != nil || count != 0 {
		t.Fatalf("excluding the owner must yield 0, got %d (%v)", count, err)
	}
}

func TestPostRepositoryPersistsUnpublishedFlag(t *testing.T) {
	db := setupRepositoryTest(t)
	postRepo := NewPostRepository(db)
	categoryRepo := NewCategoryRepository(db)
	author := createUser(t, db, "draft_author")

	category := models.Category{Title: "черновики", Description: "d", Slug: "drafts", IsPublished: false}
	if err := categoryRepo.Create(&category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	draft := models.Post{
		Title:       "черновик",
		Text:        "text",
		PubDate:     time.Now().Add(-time.Hour),
		IsPublished: false,
		AuthorID:    author.ID,
	}
	if err := postRepo.Create(&draft); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	// false 是零值，列默认值不能把它翻转成 true
	reloaded, err := postRepo.GetByID(draft.ID)
	if err != nil {
		t.Fatalf("reload draft failed: %v", err)
	}
	if reloaded.IsPublished {
		t.Fatalf("draft post persisted as published")
	}

	var reloadedCategory models.Category
	if err := db.First(&reloadedCategory, category.ID).Error; err != nil {
		t.Fatalf("reload category failed: %v", err)
	}
	if reloadedCategory.IsPublished {
		t.Fatalf("hidden category persisted as published")
	}

	var location models.Location
	if err := db.Create(&models.Location{Name: "закрытое место", IsPublished: false}).Error; err != nil {
		t.Fatalf("create location failed: %v", err)
	}
	if err := db.Where("name = ?", "закрытое место").First(&location).Error; err != nil {
		t.Fatalf("reload location failed: %v", err)
	}
	if location.IsPublished {
		t.Fatalf("hidden location persisted as published")
	}
}
