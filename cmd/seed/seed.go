package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/akoreshkov/bloghub-be/config"
	appDb "github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/db/mysqldb"
	"github.com/akoreshkov/bloghub-be/model"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
)

// seed creates the schema, the fixture groups, and optionally a demo
// author with generated posts. Groups are only ever created here or by
// an admin, never by the request handlers.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS person (
		firebase_id VARCHAR(128) NOT NULL PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		UNIQUE KEY uniq_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS blog_group (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		slug VARCHAR(150) NOT NULL,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		UNIQUE KEY uniq_slug (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS post (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		author_id VARCHAR(128) NOT NULL,
		text TEXT NOT NULL,
		group_id BIGINT NULL,
		image_blob_name VARCHAR(512) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_post_author (author_id, created_at),
		KEY idx_post_group (group_id, created_at),
		CONSTRAINT fk_post_author FOREIGN KEY (author_id) REFERENCES person (firebase_id),
		CONSTRAINT fk_post_group FOREIGN KEY (group_id) REFERENCES blog_group (id)
	)`,
}

var fixtureGroups = []*model.Group{
	{Slug: "general", Title: "General", Description: "Anything goes"},
	{Slug: "travel", Title: "Travel", Description: "Trip reports and travel notes"},
	{Slug: "tech", Title: "Tech", Description: "Software, hardware and everything between"},
}

func main() {
	demoPosts := flag.Int("demo-posts", 0, "number of generated demo posts to create")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	database, err := mysqldb.GetDatabase(cfg)
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, stmt := range schema {
		if _, err := database.GetSQLDB().ExecContext(ctx, stmt); err != nil {
			log.Fatal("error creating schema: ", err)
		}
	}

	groupIds := make([]int64, 0, len(fixtureGroups))
	for _, group := range fixtureGroups {
		existing, err := database.GetGroupBySlug(ctx, group.Slug)
		if err != nil {
			log.Fatal("error looking up group: ", err)
		}
		if existing != nil {
			groupIds = append(groupIds, existing.Id)
			continue
		}
		id, err := database.CreateGroup(ctx, group)
		if err != nil {
			log.Fatal("error creating group: ", err)
		}
		log.Printf("created group %v (id=%v)\n", group.Slug, id)
		groupIds = append(groupIds, id)
	}

	if *demoPosts > 0 {
		seedDemoPosts(ctx, database, groupIds, *demoPosts)
	}
}

func seedDemoPosts(ctx context.Context, database appDb.Database, groupIds []int64, count int) {
	demoUser := &model.User{Id: "demo-author", Username: "demo"}
	// tolerate re-runs against an already seeded database
	if err := database.CreateUser(ctx, demoUser); err != nil && !appDb.IsDupKeyErr(err) {
		log.Fatal("error creating demo user: ", err)
	}

	for i := 0; i < count; i++ {
		var groupId *int64
		// leave every third post ungrouped
		if i%3 != 0 {
			groupId = &groupIds[i%len(groupIds)]
		}
		if _, err := database.CreatePost(ctx, &appDb.CreatePost{
			AuthorId: demoUser.Id,
			Text:     gofakeit.Paragraph(1, 3, 12, " "),
			GroupId:  groupId,
		}); err != nil {
			log.Fatal("error creating demo post: ", err)
		}
	}
	log.Printf("created %v demo posts\n", count)
}
