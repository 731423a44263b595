// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client library and works with other S3-compatible storage
// systems like Ceph, SeaweedFS, and Garage.
//
// # Basic Usage
//
//	store, err := minioblob.New("localhost:9000", "trees", minioblob.Credentials{
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	idx, err := kdgo.Load(ctx, store, "points.kdt")
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
