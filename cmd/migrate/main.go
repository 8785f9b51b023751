package main

import (
	"context"
	"log"
	"os"

	"yadoya/config"
	adminModel "yadoya/internal/domains/admin/model"
	adminRepository "yadoya/internal/domains/admin/repository"
	"yadoya/infras/otel"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
	"yadoya/shared/password"
)

const (
	argLength = 2
)

// collectionFiles are seeded as empty collections so a fresh deployment
// starts from valid JSON instead of missing files.
var collectionFiles = []string{
	constant.FileRooms,
	constant.FileBookings,
	constant.FileMessages,
	constant.FileAdmins,
	constant.FileNews,
	constant.FileSiteContent,
}

func main() {
	if len(os.Args) < argLength {
		log.Fatal("Command (init/admin) is required")
	}

	cfg := config.Get()

	switch os.Args[1] {
	case "init":
		if err := initDataFiles(cfg); err != nil {
			log.Fatal(err)
		}
	case "admin":
		if len(os.Args) < 4 {
			log.Fatal("Usage: migrate admin <username> <password>")
		}

		if err := seedAdmin(cfg, os.Args[2], os.Args[3]); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("Invalid command. Use 'init' or 'admin'")
	}
}

func initDataFiles(cfg *config.Config) error {
	store, err := jsonstore.NewAt(cfg.Data.Dir, otel.New(cfg))
	if err != nil {
		return err
	}

	for _, filename := range collectionFiles {
		data, err := store.ReadFile(filename)
		if err != nil {
			return err
		}

		if data != nil {
			log.Printf("%s already exists, skipping", filename)

			continue
		}

		if err := store.WriteFile(filename, []byte("[]\n")); err != nil {
			return err
		}

		log.Printf("created empty collection %s", filename)
	}

	return nil
}

func seedAdmin(cfg *config.Config, username, plaintext string) error {
	ctx := context.Background()
	otl := otel.New(cfg)

	repo := adminRepository.New(jsonstore.New(cfg, otl))

	_, found, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if found {
		log.Printf("admin %s already exists, skipping", username)

		return nil
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return err
	}

	admin, err := repo.Insert(ctx, &adminModel.Admin{Username: username, PasswordHash: hash})
	if err != nil {
		return err
	}

	log.Printf("created admin %s with id %d", admin.Username, admin.ID)

	return nil
}
