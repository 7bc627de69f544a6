package extract

import "regexp"

// Every field uses a first-match-wins cascade: labeled patterns come before
// unlabeled heuristics, and declared order encodes that precedence. Do not
// merge a cascade into a single regex.

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`发布时间[:：]\s*(\d{4})[年\-/／](\d{1,2})[月\-/／](\d{1,2})日?`),
	regexp.MustCompile(`通报时间[:：]\s*(\d{4})[年\-/／](\d{1,2})[月\-/／](\d{1,2})日?`),
	regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日?`),
	regexp.MustCompile(`(\d{4})[-/／](\d{1,2})[-/／](\d{1,2})`),
}

var appNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`应用名称[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`App名称[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`软件名称[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`[“"『「]([^”"』」]{1,30})[”"』」]\s*(?:App|APP)`),
	regexp.MustCompile(`[“"『「]([^”"』」]{1,30})[”"』」]存在[^，。]{0,40}问题`),
}

var developerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`开发者[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`运营者[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`开发单位[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`开发商[:：]\s*([^\s，。；,;]+)`),
	regexp.MustCompile(`([^\s，。；、:：]{2,20}?(?:公司|企业|工作室|团队))`),
}

// departmentAlias maps a name as it appears in notice text to the canonical
// department name. Matching is unanchored substring search in table order,
// a known heuristic limitation: a department name embedded in unrelated
// text will still match. Longer aliases sit before their prefixes.
type departmentAlias struct {
	name      string
	canonical string
}

var departmentTable = []departmentAlias{
	{"工业和信息化部", "工业和信息化部"},
	{"工信部", "工业和信息化部"},
	{"国家互联网信息办公室", "国家互联网信息办公室"},
	{"中央网信办", "国家互联网信息办公室"},
	{"网信办", "国家互联网信息办公室"},
	{"公安部", "公安部"},
	{"市场监管总局", "市场监管总局"},
	{"国家计算机病毒应急处理中心", "国家计算机病毒应急处理中心"},
	{"北京市通信管理局", "北京市通信管理局"},
	{"上海市通信管理局", "上海市通信管理局"},
	{"广东省通信管理局", "广东省通信管理局"},
	{"浙江省通信管理局", "浙江省通信管理局"},
	{"江苏省通信管理局", "江苏省通信管理局"},
	{"四川省通信管理局", "四川省通信管理局"},
}

// departmentFallback catches provincial/municipal regulators missing from
// the table
var departmentFallback = regexp.MustCompile(`([^\s，。；]{1,9}[省市](?:通信管理局|网信办|市场监管局))`)

// platformTable shares the unanchored substring semantics of the
// department table
var platformTable = []string{
	"应用宝",
	"华为应用市场",
	"小米应用商店",
	"OPPO软件商店",
	"vivo应用商店",
	"App Store",
	"苹果商店",
	"百度手机助手",
	"360手机助手",
	"豌豆荚",
	"安智市场",
	"魅族应用商店",
}

var summaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`违规问题[:：]\s*([^\n。；]+)`),
	regexp.MustCompile(`主要问题[:：]\s*([^\n。；]+)`),
	regexp.MustCompile(`存在问题[:：]\s*([^\n。；]+)`),
	regexp.MustCompile(`存在([^\n。；]{10,100}?(?:违规|问题|行为))`),
	regexp.MustCompile(`((?:超范围|违规|私自|强制|频繁|未经[^\s，。；]{0,6}同意)[^\n，。；]{0,50}?(?:个人信息|用户信息|隐私|权限))`),
}

// detailKeywords gates which sentences qualify for the violation detail
var detailKeywords = []string{
	"违规", "问题", "收集", "权限", "个人信息", "隐私", "整改", "下架",
}

var sentenceSplitter = regexp.MustCompile(`[。！？\n]+`)

const (
	summaryMaxRunes = 150
	detailMaxRunes  = 1000
	detailMinSentRunes = 20
	detailMaxSentRunes = 500
	detailMaxSentences = 5
)
