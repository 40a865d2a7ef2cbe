package deploy

import (
	"context"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/oriys/stratus/internal/domain"
)

// fakePlatform 同时实现 FunctionAPI 与 ObjectStore，
// 按顺序记录每次远程调用，供测试断言调用序列与载荷。
type fakePlatform struct {
	calls []string

	// 远端函数名列表；pageSize > 0 时按页返回以模拟分页
	functions []string
	pageSize  int

	aliasExists bool

	listErr        error
	createErr      error
	updateCfgErr   error
	updateCodeErr  error
	getAliasErr    error
	createAliasErr error
	updateAliasErr error
	putErr         error

	createInput  CreateInput
	cfgInput     ConfigUpdate
	codeInput    CodeSource
	codePublish  bool
	aliasVersion string

	putBucket string
	putKey    string
	putData   []byte

	createVersion string
	updateVersion string
}

func (f *fakePlatform) ListFunctions(_ context.Context, marker string) ([]string, string, error) {
	f.calls = append(f.calls, "ListFunctions")
	if f.listErr != nil {
		return nil, "", f.listErr
	}
	if f.pageSize <= 0 {
		return f.functions, "", nil
	}
	offset := 0
	if marker != "" {
		offset, _ = strconv.Atoi(marker)
	}
	end := offset + f.pageSize
	if end >= len(f.functions) {
		return f.functions[offset:], "", nil
	}
	return f.functions[offset:end], strconv.Itoa(end), nil
}

func (f *fakePlatform) CreateFunction(_ context.Context, in CreateInput) (string, error) {
	f.calls = append(f.calls, "CreateFunction")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createInput = in
	if f.createVersion == "" {
		return "1", nil
	}
	return f.createVersion, nil
}

func (f *fakePlatform) UpdateFunctionConfiguration(_ context.Context, in ConfigUpdate) error {
	f.calls = append(f.calls, "UpdateFunctionConfiguration")
	if f.updateCfgErr != nil {
		return f.updateCfgErr
	}
	f.cfgInput = in
	return nil
}

func (f *fakePlatform) UpdateFunctionCode(_ context.Context, _ string, code CodeSource, publish bool) (string, error) {
	f.calls = append(f.calls, "UpdateFunctionCode")
	if f.updateCodeErr != nil {
		return "", f.updateCodeErr
	}
	f.codeInput = code
	f.codePublish = publish
	if f.updateVersion == "" {
		return "$LATEST", nil
	}
	return f.updateVersion, nil
}

func (f *fakePlatform) GetAlias(_ context.Context, _, _ string) error {
	f.calls = append(f.calls, "GetAlias")
	if f.getAliasErr != nil {
		return f.getAliasErr
	}
	if !f.aliasExists {
		return domain.ErrAliasNotFound
	}
	return nil
}

func (f *fakePlatform) CreateAlias(_ context.Context, _, _, version string) error {
	f.calls = append(f.calls, "CreateAlias")
	if f.createAliasErr != nil {
		return f.createAliasErr
	}
	f.aliasVersion = version
	return nil
}

func (f *fakePlatform) UpdateAlias(_ context.Context, _, _, version string) error {
	f.calls = append(f.calls, "UpdateAlias")
	if f.updateAliasErr != nil {
		return f.updateAliasErr
	}
	f.aliasVersion = version
	return nil
}

func (f *fakePlatform) PutObject(_ context.Context, bucket, key string, data []byte) error {
	f.calls = append(f.calls, "PutObject")
	if f.putErr != nil {
		return f.putErr
	}
	f.putBucket = bucket
	f.putKey = key
	f.putData = data
	return nil
}

// callIndex 返回首个匹配调用在序列中的下标，未出现时返回 -1。
func (f *fakePlatform) callIndex(name string) int {
	for i, c := range f.calls {
		if c == name {
			return i
		}
	}
	return -1
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testArtifact() *domain.Artifact {
	return &domain.Artifact{Path: "build/fn.zip", Data: []byte("zip-bytes")}
}
