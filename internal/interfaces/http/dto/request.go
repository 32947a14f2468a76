// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// IDRequest 资源 ID 请求
type IDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// ProjectIDRequest 项目 ID 请求
type ProjectIDRequest struct {
	ProjectID string `uri:"pid" binding:"required"`
}

// BindID 从 URI 绑定资源 ID
func BindID(c *gin.Context) string {
	return c.Param("id")
}

// BindProjectID 从 URI 绑定项目 ID
func BindProjectID(c *gin.Context) string {
	return c.Param("pid")
}

// Nullable 区分"字段缺失"与"显式传 null"的可空字段
// 缺失时 Set 为 false；传 null 时 Set 为 true 且 Valid 为 false
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr 将可空字段折叠为双层指针补丁值
// 缺失返回 nil；null 返回指向 nil 的指针；有值返回指向值指针的指针
func (n Nullable[T]) Ptr() **T {
	if !n.Set {
		return nil
	}
	if !n.Valid {
		var null *T
		return &null
	}
	v := n.Value
	p := &v
	return &p
}
