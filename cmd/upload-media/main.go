// Command upload-media syncs the export's local media directory into the
// object-store bucket the service presigns against. Files already present in
// the bucket are skipped, so repeated runs only upload new files.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/joho/godotenv"

	"archive-service/internal/media"
)

var contentTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".png":  "image/png",
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	bucket := mustEnv("S3_BUCKET")

	client, err := media.NewS3Client(ctx, media.S3Config{
		Region:    getEnv("S3_REGION", "auto"),
		Endpoint:  getEnv("S3_ENDPOINT", ""),
		AccessKey: mustEnv("S3_ACCESS_KEY"),
		SecretKey: mustEnv("S3_SECRET_KEY"),
		Bucket:    bucket,
	})
	if err != nil {
		log.Fatalf("failed to build s3 client: %v", err)
	}

	mediaDir := getEnv("MEDIA_DIR", "media")
	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		log.Fatalf("failed to read media dir: %v", err)
	}

	uploaded, skipped := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		key := "media/" + entry.Name()
		exists, err := objectExists(ctx, client, bucket, key)
		if err != nil {
			log.Fatalf("failed to check %s: %v", key, err)
		}
		if exists {
			skipped++
			continue
		}

		if err := uploadFile(ctx, client, bucket, key, filepath.Join(mediaDir, entry.Name())); err != nil {
			log.Fatalf("failed to upload %s: %v", key, err)
		}
		uploaded++
		log.Printf("uploaded %s", key)
	}

	log.Printf("done: %d uploaded, %d skipped", uploaded, skipped)
}

func objectExists(ctx context.Context, client *s3.Client, bucket, key string) (bool, error) {
	_, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func uploadFile(ctx context.Context, client *s3.Client, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := contentTypes[strings.ToLower(filepath.Ext(path))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        f,
		ContentType: &contentType,
	})
	return err
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		log.Fatalf("missing required environment variable %s", key)
	}
	return val
}
