package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@inkwell.dev"
	password := "Demo1234"
	username := "demo"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (fullname, email, username, password_hash, profile_img)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET fullname = EXCLUDED.fullname
		RETURNING id
	`, "Demo Author", email, username, hash,
		"https://api.dicebear.com/6.x/notionists-neutral/svg?seed="+username).Scan(&authorID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", authorID, email, password)

	posts := []struct {
		blogID, title, des string
		tags               string
	}{
		{"getting-started-with-inkwell-aaaaaaaaaa", "Getting started with Inkwell", "A quick tour of writing and publishing.", "{writing,guide}"},
		{"why-plain-text-wins-bbbbbbbbbb", "Why plain text wins", "Notes on durable formats.", "{writing,opinion}"},
		{"reading-lists-that-stick-cccccccccc", "Reading lists that stick", "Curating posts you will actually read.", "{reading}"},
	}
	for _, p := range posts {
		if _, err := db.Exec(`
			INSERT INTO blogs (blog_id, title, des, banner, content, tags, author_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (blog_id) DO NOTHING
		`, p.blogID, p.title, p.des,
			"https://storage.googleapis.com/inkwell-demo/banner.jpeg",
			`{"blocks":[{"type":"paragraph","data":{"text":"Hello from the seed data."}}]}`,
			p.tags, authorID); err != nil {
			log.Fatalf("failed to seed blog %s: %v", p.blogID, err)
		}
	}
	if _, err := db.Exec(`UPDATE users SET total_posts = (SELECT count(*) FROM blogs WHERE author_id = $1 AND NOT draft) WHERE id = $1`, authorID); err != nil {
		log.Fatalf("failed to sync total_posts: %v", err)
	}
	fmt.Printf("seeded %d published posts for @%s\n", len(posts), username)
}
