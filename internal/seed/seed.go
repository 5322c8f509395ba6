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
	ShouldClean bool
}

// Demo seeds a small fixed demo data set. Used by the server's
// --seed flag on startup during development.
func Demo(db *gorm.DB) error {
	return Seed(db, Options{NumUsers: 10, NumPosts: 30})
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

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

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	follows, err := createFollows(db, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow relationships created", follows)

	likes, comments, err := createEngagement(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, table := range []string{"comments", "likes", "follows", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One shared hash keeps seeding fast; every seed account logs in
	// with the same development password.
	hashed, err := bcrypt.GenerateFromPassword([]byte("SeedPassword12!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			FullName: first + " " + last,
			Email:    fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Password: string(hashed),
			Active:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID:      author.ID,
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 2, 8, " "),
			CreatedAt:   randomPastTime(90),
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createFollows(db *gorm.DB, users []models.User) (int, error) {
	created := 0
	for _, follower := range users {
		for attempt := 0; attempt < 3; attempt++ {
			target := users[rand.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				res := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
					DoNothing: true,
				}).Create(&models.Follow{FollowerID: follower.ID, FolloweeID: target.ID})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return nil
				}
				if err := tx.Model(&models.User{}).Where("id = ?", target.ID).
					UpdateColumn("followed_by", gorm.Expr("followed_by + ?", 1)).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.User{}).Where("id = ?", follower.ID).
					UpdateColumn("follows", gorm.Expr("follows + ?", 1)).Error; err != nil {
					return err
				}
				created++
				return nil
			})
			if err != nil {
				return created, err
			}
		}
	}
	return created, nil
}

func createEngagement(db *gorm.DB, users []models.User, posts []models.Post) (int, int, error) {
	likes, comments := 0, 0
	for _, post := range posts {
		for _, user := range users {
			if rand.Intn(3) == 0 {
				err := db.Transaction(func(tx *gorm.DB) error {
					res := tx.Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
						DoNothing: true,
					}).Create(&models.Like{UserID: user.ID, PostID: post.ID})
					if res.Error != nil || res.RowsAffected == 0 {
						return res.Error
					}
					likes++
					return tx.Model(&models.Post{}).Where("id = ?", post.ID).
						UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
				})
				if err != nil {
					return likes, comments, err
				}
			}
			if rand.Intn(5) == 0 {
				err := db.Transaction(func(tx *gorm.DB) error {
					res := tx.Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
						DoNothing: true,
					}).Create(&models.Comment{
						UserID:  user.ID,
						PostID:  post.ID,
						Comment: gofakeit.Sentence(8),
					})
					if res.Error != nil || res.RowsAffected == 0 {
						return res.Error
					}
					comments++
					return tx.Model(&models.Post{}).Where("id = ?", post.ID).
						UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
				})
				if err != nil {
					return likes, comments, err
				}
			}
		}
	}
	return likes, comments, nil
}

func randomPastTime(maxDays int) time.Time {
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	minsBack := rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
