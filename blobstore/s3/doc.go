// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("trees/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	idx, err := kdgo.Load(ctx, store, "points.kdt")
//
// # Features
//
//   - Multipart uploads for large trees via the SDK upload manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints with path-style addressing for S3-compatible services
package s3
