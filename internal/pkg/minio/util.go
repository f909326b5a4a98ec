package minio

import (
	"Postdeck/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Storage 图片存储，便于在服务层替换
type Storage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// ObjectStorage 基于全局 Client 的实现，返回对象的公共访问 URL
type ObjectStorage struct{}

func (ObjectStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	key, err := UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}
	return GetPublicURL(key), nil
}

func (ObjectStorage) Delete(ctx context.Context, objectName string) error {
	return DeleteFile(ctx, objectName)
}

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL，优先使用 public_endpoint
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO
	return PublicURL(cfg.PublicEndpoint, cfg.Endpoint, cfg.UseSSL, cfg.Bucket, objectName)
}

// PublicURL public 为空时退回 endpoint 并按 useSSL 补全协议
func PublicURL(public, endpoint string, useSSL bool, bucket, objectName string) string {
	base := strings.TrimRight(public, "/")
	if base == "" {
		protocol := "http"
		if useSSL {
			protocol = "https"
		}
		base = fmt.Sprintf("%s://%s", protocol, endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, objectName)
}
