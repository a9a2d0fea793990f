// Package media 实现媒体文件的校验和上传
// 文件存入 Supabase Storage 的媒体桶，数据库里只保存生成的公开链接
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ignite_chat_server/internal/config"
	"ignite_chat_server/internal/dto/respond"
	"ignite_chat_server/internal/model"
	"ignite_chat_server/pkg/constants"
	"ignite_chat_server/pkg/errorx"

	storage "github.com/supabase-community/storage-go"
)

// Uploader 对象存储上传接口，测试时可用桩实现替换
type Uploader interface {
	// Upload 上传对象并返回公开访问链接
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// Service 媒体业务实现
type Service struct {
	uploader Uploader
}

// NewService 创建媒体业务实例
func NewService(uploader Uploader) *Service {
	return &Service{uploader: uploader}
}

// Upload 校验并上传媒体文件
// 校验先于上传：超限或类型不对的文件一个字节都不会发往对象存储
// 对象路径为 <房间ID>/<毫秒时间戳><扩展名>，同房间内时间戳天然去重
func (s *Service) Upload(ctx context.Context, roomId, fileName, contentType string, size int64, r io.Reader) (*respond.UploadRespond, error) {
	if size > constants.MEDIA_MAX_SIZE {
		return nil, errorx.Newf(errorx.CodeMediaTooLarge, "文件大小超过 %d MB 上限",
			constants.MEDIA_MAX_SIZE/1024/1024)
	}

	kind, err := mediaKind(contentType)
	if err != nil {
		return nil, err
	}

	objectPath := fmt.Sprintf("%s/%d%s", roomId, time.Now().UnixMilli(), filepath.Ext(fileName))
	url, err := s.uploader.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "媒体上传失败")
	}

	return &respond.UploadRespond{
		MediaUrl:  url,
		MediaType: kind,
	}, nil
}

// mediaKind 由 Content-Type 推断媒体种类，只放行图片和视频
func mediaKind(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return model.MediaTypeImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return model.MediaTypeVideo, nil
	default:
		return "", errorx.New(errorx.CodeMediaBadType, "只支持图片和视频文件")
	}
}

// SupabaseUploader 基于 Supabase Storage 的上传实现
type SupabaseUploader struct {
	client *storage.Client
	bucket string
}

// NewSupabaseUploader 从配置创建 Supabase Storage 上传器
func NewSupabaseUploader() *SupabaseUploader {
	conf := config.GetConfig()
	client := storage.NewClient(conf.StorageConfig.URL+"/storage/v1", conf.StorageConfig.Key, nil)
	return &SupabaseUploader{
		client: client,
		bucket: conf.StorageConfig.Bucket,
	}
}

// Upload 上传对象到媒体桶并返回公开访问链接
func (u *SupabaseUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}
	if _, err := u.client.UploadFile(u.bucket, objectPath, r, options); err != nil {
		return "", err
	}
	publicURL := u.client.GetPublicUrl(u.bucket, objectPath)
	return publicURL.SignedURL, nil
}
