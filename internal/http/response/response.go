package response

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构，HTTP 状态恒为 200，业务结果看 status_code
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 列表响应
type PageResponse struct {
	Response
	Pagination Page `json:"pagination"`
}

// Page 列表分页信息，next/previous 为可直接请求的链接，无则为 null
type Page struct {
	Count    int64   `json:"count"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
	Pages    int64   `json:"pages"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// NewPage 根据当前请求与总数生成分页信息
func NewPage(c *gin.Context, page, limit int, total int64) Page {
	p := Page{Count: total, Page: page, Limit: limit}
	if limit > 0 {
		p.Pages = (total + int64(limit) - 1) / int64(limit)
	}
	if c == nil || c.Request == nil || c.Request.URL == nil {
		return p
	}
	if int64(page) < p.Pages {
		p.Next = pageLink(c, page+1)
	}
	if page > 1 && p.Pages > 0 {
		p.Previous = pageLink(c, page-1)
	}
	return p
}

func pageLink(c *gin.Context, page int) *string {
	link := url.URL{Path: c.Request.URL.Path}
	if c.Request.Host != "" {
		link.Host = c.Request.Host
		link.Scheme = "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			link.Scheme = "https"
		}
	}
	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	link.RawQuery = query.Encode()
	s := link.String()
	return &s
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, page Page) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: "success", Data: data},
		Pagination: page,
	})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	ErrorWithData(c, statusCode, msg, nil)
}

// ErrorWithData 错误响应（带数据），请求 ID 合入 data
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       withRequestID(c, data),
	})
}

// Failure 与 ErrorWithData 相同的结构，但使用真实 HTTP 状态；
// 供文件下载这类成功时不返回 JSON 的接口使用
func Failure(c *gin.Context, httpStatus, statusCode int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       withRequestID(c, nil),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

func withRequestID(c *gin.Context, data interface{}) interface{} {
	if c == nil {
		return data
	}
	requestID := c.GetString("request_id")
	if requestID == "" {
		return data
	}
	switch v := data.(type) {
	case nil:
		return gin.H{"request_id": requestID}
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{"request_id": requestID, "detail": data}
	}
}
