package e2e

import (
	"fmt"
	"os"
	"testing"

	"github.com/metaview/recordings-ms-go/internal/storage"
	"github.com/metaview/recordings-ms-go/test/testutil"
	"github.com/minio/minio-go/v7"
)

var (
	GlobalStrg        *storage.MinioStorage
	GlobalMinioClient *minio.Client
)

func TestMain(m *testing.M) {
	code := func() int {
		if os.Getenv("TEST_DB_DSN") == "" {
			mdb, err := testutil.StartMariaDBContainer()
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to start MariaDB: %v\n", err)
				return 1
			}
			defer mdb.Cleanup()
			os.Setenv("TEST_DB_DSN", mdb.DSN)
		}

		mi, err := testutil.StartMinIOContainer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start MinIO: %v\n", err)
			return 1
		}
		defer mi.Cleanup()
		GlobalStrg = mi.Strg
		GlobalMinioClient = mi.Raw

		return m.Run()
	}()

	os.Exit(code)
}
