package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Details []string        `json:"details,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthorData 作者档案响应数据
type AuthorData struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

// EditorialData 出版社档案响应数据
type EditorialData struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BookData 图书响应数据
type BookData struct {
	ID          uint   `json:"id"`
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Condition   string `json:"condition"`
	AuthorID    uint   `json:"author_id"`
	EditorialID uint   `json:"editorial_id"`
	SellerID    uint   `json:"seller_id"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Available   bool   `json:"available"`
	Description string `json:"description"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	List  []BookData `json:"list"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
}

// CartItemData 加购/更新条目响应数据
type CartItemData struct {
	ItemID   uint `json:"item_id"`
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

// CartLineData 购物车行数据
type CartLineData struct {
	ItemID    uint   `json:"item_id"`
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

// CartData 购物车视图数据
type CartData struct {
	CartID        uint           `json:"cart_id"`
	Lines         []CartLineData `json:"lines"`
	TotalQuantity int            `json:"total_quantity"`
	Total         int64          `json:"total"`
	TotalYuan     string         `json:"total_yuan"`
}

// PurchaseItemData 购买明细数据
type PurchaseItemData struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Subtotal int64  `json:"subtotal"`
}

// PurchaseData 购买记录数据(结算响应同款)
type PurchaseData struct {
	PurchaseID uint               `json:"purchase_id"`
	PurchaseNo string             `json:"purchase_no"`
	Total      int64              `json:"total"`
	TotalYuan  string             `json:"total_yuan"`
	Items      []PurchaseItemData `json:"items"`
	CreatedAt  string             `json:"created_at"`
}

// PurchaseListData 购买历史数据
type PurchaseListData struct {
	List  []PurchaseData `json:"list"`
	Total int64          `json:"total"`
}

// doJSON 发送HTTP请求并解析JSON响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
//
// 教学说明：
// 使用时间戳确保邮箱唯一性，避免测试重复运行时邮箱冲突
// 确保邮箱格式正确（包含@和域名）
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一的测试ISBN
//
// 教学说明：
// ISBN-13格式：978 + 10位数字
// 使用时间戳的后10位确保唯一性
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("978%010d", timestamp%10000000000)
}

// RegisterTestUser 注册测试用户并返回Token
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册+登录的完整流程
// 简化了测试代码，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, nickname string) (email string, token string) {
	// 1. 注册
	email = GenerateTestEmail(nickname)
	registerReq := map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": nickname,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	// 2. 登录
	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// CreateTestAuthor 创建测试作者档案并返回ID
func CreateTestAuthor(t *testing.T, token string, name string) uint {
	req := map[string]string{
		"name":        fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		"nationality": "中国",
	}

	resp := PostJSON(t, BaseURL+"/authors", req, token)
	require.Equal(t, 0, resp.Code, "创建作者档案失败: %s", resp.Message)

	var data AuthorData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析作者响应失败")

	return data.ID
}

// CreateTestEditorial 创建测试出版社档案并返回ID
func CreateTestEditorial(t *testing.T, token string, name string) uint {
	req := map[string]string{
		"name": fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
	}

	resp := PostJSON(t, BaseURL+"/editorials", req, token)
	require.Equal(t, 0, resp.Code, "创建出版社档案失败: %s", resp.Message)

	var data EditorialData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析出版社响应失败")

	return data.ID
}

// PublishTestBook 发布测试挂单并返回图书ID
//
// 教学说明：
// 封装了作者/出版社档案创建+挂单发布的完整流程，
// 返回bookID供后续测试使用
func PublishTestBook(t *testing.T, token string, title string, price int64, stock int) uint {
	authorID := CreateTestAuthor(t, token, "测试作者")
	editorialID := CreateTestEditorial(t, token, "测试出版社")

	bookReq := map[string]interface{}{
		"isbn":         GenerateTestISBN(),
		"title":        title,
		"description":  "集成测试用图书",
		"condition":    "good",
		"pages":        312,
		"language":     "中文",
		"author_id":    authorID,
		"editorial_id": editorialID,
		"price":        price,
		"stock":        stock,
	}

	bookResp := PostJSON(t, BaseURL+"/books", bookReq, token)
	require.Equal(t, 0, bookResp.Code, "挂单发布失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}

// AddToCart 把图书加入购物车
func AddToCart(t *testing.T, token string, bookID uint, quantity int) {
	req := map[string]interface{}{
		"book_id":  bookID,
		"quantity": quantity,
	}

	resp := PostJSON(t, BaseURL+"/cart/items", req, token)
	require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)
}

// GetCart 查看购物车
func GetCart(t *testing.T, token string) *CartData {
	resp := GetJSON(t, BaseURL+"/cart", token)
	require.Equal(t, 0, resp.Code, "查看购物车失败: %s", resp.Message)

	var data CartData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析购物车响应失败")

	return &data
}
