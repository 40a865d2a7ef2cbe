// Package domain 定义了部署工具的核心领域模型。
// 本文件实现工具级默认值：在声明未提供某字段时填入配置的默认值。
package domain

// SpecDefaults 是配置层提供的部署声明默认值。
// 与 Normalize 的内置常量不同，这些值来自工具配置，按部署方的约定设置。
type SpecDefaults struct {
	Handler    string
	Runtime    string
	Role       string
	MemorySize *int32
	Timeout    *int32
}

// Apply 把默认值填入声明中未提供的字段，显式提供的值永远优先。
// 指针字段按值拷贝，声明不会与默认值共享底层存储。
func (d SpecDefaults) Apply(s *DeploymentSpec) {
	if s.Handler == "" {
		s.Handler = d.Handler
	}
	if s.Runtime == "" {
		s.Runtime = d.Runtime
	}
	if s.Role == "" {
		s.Role = d.Role
	}
	if s.MemorySize == nil && d.MemorySize != nil {
		v := *d.MemorySize
		s.MemorySize = &v
	}
	if s.Timeout == nil && d.Timeout != nil {
		v := *d.Timeout
		s.Timeout = &v
	}
}
