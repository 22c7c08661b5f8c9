package main

import (
	"fmt"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/service"

	"github.com/brianvoe/gofakeit/v7"
)

const seedUserCount = 5
const seedPostsPerUser = 6
const seedPassword = "blogicum-demo"

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 固定分类集合
	categories := []models.Category{
		{Title: "Путешествия", Description: "Заметки из поездок", Slug: "travel", IsPublished: true},
		{Title: "Еда", Description: "Рецепты и рестораны", Slug: "food", IsPublished: true},
		{Title: "Кино", Description: "Обзоры и впечатления", Slug: "movies", IsPublished: true},
		{Title: "Черновики", Description: "Скрытая категория", Slug: "drafts", IsPublished: false},
	}
	for _, category := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", category.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", category.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", category.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", category.Slug)
		}
	}

	// 固定地点集合
	locations := []models.Location{
		{Name: "Москва", IsPublished: true},
		{Name: "Санкт-Петербург", IsPublished: true},
		{Name: "Казань", IsPublished: true},
		{Name: "Остров настоящих программистов", IsPublished: false},
	}
	for _, location := range locations {
		var existing models.Location
		if err := models.DB.Where("name = ?", location.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&location).Error; err != nil {
				stdLog.Printf("Failed to create location %s: %v", location.Name, err)
			}
		}
	}

	var publishedCategories []models.Category
	if err := models.DB.Where("is_published = ?", true).Find(&publishedCategories).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	var publishedLocations []models.Location
	if err := models.DB.Where("is_published = ?", true).Find(&publishedLocations).Error; err != nil {
		stdLog.Fatalf("Failed to load locations: %v", err)
	}

	gofakeit.Seed(0)
	auth := service.NewAuthService(cfg)
	passwordHash, err := auth.HashPassword(seedPassword)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}

	// 示例用户与文章
	var users []models.User
	for i := 0; i < seedUserCount; i++ {
		user := models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			PasswordHash: passwordHash,
			FirstName:    gofakeit.FirstName(),
			LastName:     gofakeit.LastName(),
			Email:        gofakeit.Email(),
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", user.Username, err)
			continue
		}
		users = append(users, user)
	}
	stdLog.Printf("Created %d users (password: %s)", len(users), seedPassword)

	now := time.Now()
	var posts []models.Post
	for _, user := range users {
		for i := 0; i < seedPostsPerUser; i++ {
			category := publishedCategories[gofakeit.Number(0, len(publishedCategories)-1)]
			post := models.Post{
				Title:       gofakeit.Sentence(5),
				Text:        gofakeit.Paragraph(2, 4, 12, "\n\n"),
				PubDate:     now.Add(-time.Duration(gofakeit.Number(1, 24*30)) * time.Hour),
				IsPublished: gofakeit.Number(0, 9) > 1, // 约一成为草稿
				AuthorID:    user.ID,
				CategoryID:  &category.ID,
			}
			// 部分文章设为定时发布
			if i == 0 {
				post.PubDate = now.Add(time.Duration(gofakeit.Number(24, 24*14)) * time.Hour)
			}
			if len(publishedLocations) > 0 && gofakeit.Bool() {
				location := publishedLocations[gofakeit.Number(0, len(publishedLocations)-1)]
				post.LocationID = &location.ID
			}
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post: %v", err)
				continue
			}
			posts = append(posts, post)
		}
	}
	stdLog.Printf("Created %d posts", len(posts))

	commentCount := 0
	for _, post := range posts {
		for i := 0; i < gofakeit.Number(0, 4); i++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			comment := models.Comment{
				Text:     gofakeit.Sentence(10),
				PostID:   post.ID,
				AuthorID: commenter.ID,
			}
			if err := models.DB.Create(&comment).Error; err != nil {
				stdLog.Printf("Failed to create comment: %v", err)
				continue
			}
			commentCount++
		}
	}
	stdLog.Printf("Created %d comments", commentCount)
	stdLog.Printf("Seed finished")
}
