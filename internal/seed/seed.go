// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d posts and %d comments...",
		opts.NumUsers, opts.NumPosts, opts.NumComments)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := createFollowGraph(db, users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Println("✓ follow graph created")

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(db, users, posts, opts.NumComments)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	if err := createLikes(db, users, posts, comments); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Println("✓ likes created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comment_likes, likes, comments, posts, follows, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	// Always include some fixed accounts so dev logins stay predictable
	if count >= 3 {
		baseUsers := []string{"alice", "bob", "test"}
		for _, u := range baseUsers {
			user := models.User{
				Username:       u,
				Email:          fmt.Sprintf("%s@example.com", u),
				Password:       string(hashedPassword),
				FirstName:      gofakeit.FirstName(),
				LastName:       gofakeit.LastName(),
				Bio:            "One of the OGs.",
				ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", u),
			}
			if err := db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		// Suffix keeps usernames unique across runs
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)

		user := models.User{
			Username:       username,
			Email:          fmt.Sprintf("%s@example.com", username),
			Password:       string(hashedPassword),
			FirstName:      first,
			LastName:       last,
			Bio:            gofakeit.Sentence(8),
			Website:        gofakeit.URL(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowGraph gives every user a handful of people to follow so the
// seeded feeds are not empty.
func createFollowGraph(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, follower := range users {
		targets := r.Intn(6) + 2
		for i := 0; i < targets; i++ {
			following := users[r.Intn(len(users))]
			if following.ID == follower.ID {
				continue
			}
			follow := models.Follow{FollowerID: follower.ID, FollowingID: following.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]

		var imageURL string
		if r.Float32() < 0.4 {
			imageURL = fmt.Sprintf("https://picsum.photos/seed/%d/800/800", r.Intn(10000))
		}

		post := models.Post{
			Content:  gofakeit.Paragraph(1, r.Intn(5)+1, 12, " "),
			UserID:   user.ID,
			ImageURL: imageURL,
		}

		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post, count int) ([]models.Comment, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	comments := make([]models.Comment, 0, count)

	for i := 0; i < count; i++ {
		comment := models.Comment{
			Content: gofakeit.Sentence(r.Intn(15) + 3),
			UserID:  users[r.Intn(len(users))].ID,
			PostID:  posts[r.Intn(len(posts))].ID,
		}
		if err := db.Create(&comment).Error; err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

// createLikes sprinkles post and comment likes across the seeded content.
// The unique indexes deduplicate repeated picks.
func createLikes(db *gorm.DB, users []models.User, posts []models.Post, comments []models.Comment) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, post := range posts {
		likers := r.Intn(len(users)/2 + 1)
		for i := 0; i < likers; i++ {
			like := models.Like{UserID: users[r.Intn(len(users))].ID, PostID: post.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}
	}

	for _, comment := range comments {
		if r.Float32() > 0.5 {
			continue
		}
		likers := r.Intn(4) + 1
		for i := 0; i < likers; i++ {
			like := models.CommentLike{UserID: users[r.Intn(len(users))].ID, CommentID: comment.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
