// Package prompt 提供营销文案类别模板与提示词组装
package prompt

import (
	"strings"

	apperrors "marketai-api/pkg/errors"
)

// Category 文案类别
type Category string

const (
	CategorySlogan             Category = "slogan"
	CategoryAdCopy             Category = "ad-copy"
	CategoryProductDescription Category = "product-description"
	CategoryHashtags           Category = "hashtags"
	CategoryEmail              Category = "email"

	// DefaultCategory 未知类别回退到的模板
	DefaultCategory = CategorySlogan
)

// Template 类别对应的任务说明与输出格式
type Template struct {
	Instruction string
	Format      string
}

const preamble = "You are a professional marketing copywriter with expertise in creating high-converting content. "

const requirements = `REQUIREMENTS:
- Make it professional and engaging
- Ensure it's suitable for the target audience
- Focus on benefits and value proposition
- Use persuasive language that drives action
- Keep the tone appropriate for marketing materials`

const closing = "Please provide only the requested content without any additional explanations or meta-commentary."

var categories = []Category{
	CategorySlogan,
	CategoryAdCopy,
	CategoryProductDescription,
	CategoryHashtags,
	CategoryEmail,
}

var templates = map[Category]Template{
	CategorySlogan: {
		Instruction: "Create 3-5 catchy, memorable slogans that capture the essence of this product/service. Make them short, impactful, and brand-worthy.",
		Format:      "List each slogan on a new line with a bullet point.",
	},
	CategoryAdCopy: {
		Instruction: "Write compelling advertisement copy that highlights key benefits, creates urgency, and drives action. Include a strong call-to-action.",
		Format:      "Provide a headline, main copy (2-3 paragraphs), and a clear call-to-action.",
	},
	CategoryProductDescription: {
		Instruction: "Create a detailed, engaging product description that highlights features, benefits, and value proposition. Make it SEO-friendly and conversion-focused.",
		Format:      "Provide a structured description with key features, benefits, and specifications if applicable.",
	},
	CategoryHashtags: {
		Instruction: "Generate 15-20 relevant hashtags for social media marketing. Mix popular, niche, and branded hashtags for maximum reach.",
		Format:      "List hashtags separated by spaces, starting with most popular/relevant ones.",
	},
	CategoryEmail: {
		Instruction: "Write a complete marketing email including subject line, body copy, and call-to-action. Make it engaging and conversion-focused.",
		Format:      "Provide: Subject Line, Email Body (with greeting, main content, and closing), and Call-to-Action.",
	},
}

// Categories 返回全部已知类别，顺序固定
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Lookup 查找类别模板，未知类别返回默认模板与 false
func Lookup(category string) (Template, bool) {
	if tpl, ok := templates[Category(category)]; ok {
		return tpl, true
	}
	return templates[DefaultCategory], false
}

// Label 生成类别展示名：首个连字符替换为空格后转大写
func Label(category string) string {
	return strings.ToUpper(strings.Replace(category, "-", " ", 1))
}

// ValidateDescription 调用 Build 之前校验描述非空
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.ErrEmptyDescription
	}
	return nil
}

// Build 组装发送给模型的完整指令，纯函数
// 未知类别不报错，使用 slogan 模板
func Build(category, description string) string {
	tpl, _ := Lookup(category)

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\nCONTENT TYPE: ")
	b.WriteString(Label(category))
	b.WriteString("\n\nPRODUCT/SERVICE DESCRIPTION:\n")
	b.WriteString(description)
	b.WriteString("\n\nTASK: ")
	b.WriteString(tpl.Instruction)
	b.WriteString("\n\nFORMAT: ")
	b.WriteString(tpl.Format)
	b.WriteString("\n\n")
	b.WriteString(requirements)
	b.WriteString("\n\n")
	b.WriteString(closing)
	return b.String()
}
