// Package awscloud 用 AWS SDK 实现部署流程声明的平台能力接口。
// 本文件实现 S3 服务适配：产物暂存上传。
package awscloud

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectClient 基于 S3 客户端实现 deploy.ObjectStore。
type ObjectClient struct {
	client *s3.Client
}

// NewObjectClient 从共享配置创建 S3 适配客户端。
func NewObjectClient(cfg aws.Config) *ObjectClient {
	return &ObjectClient{client: s3.NewFromConfig(cfg)}
}

// PutObject 把产物字节写入 bucket/key，已有对象被覆盖。
func (c *ObjectClient) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}
