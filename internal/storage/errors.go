package storage

import (
	"errors"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
)

// IsNoSuchKey 判断错误是否表示对象本身不存在。
// 桶不存在不算在内：删除导出文件时它意味着配置错误，必须暴露出来。
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.Code {
		case "NoSuchKey", "NotFound":
			return true
		case "NoSuchBucket":
			return false
		}
		return resp.StatusCode == http.StatusNotFound
	}

	// 部分 S3 网关只返回文本错误。
	return strings.Contains(strings.ToLower(err.Error()), "specified key does not exist")
}
