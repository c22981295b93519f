package itemgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/examforge/examgen/internal/exam"
)

const systemPrompt = `你是一名专业的考试命题专家。你根据给定的学习材料命制规范的考试题目。

命题总则：
- 题目必须完全基于材料内容，不得引入材料之外的知识点。
- 题干为陈述句，表述严谨，不使用"可能""大概"等模糊措辞，不使用双重否定。
- 解析必须分三部分：教材原文（注明出处）、分析说明、结论。
- 所有输出必须是一个 JSON 对象，字段与给定示例完全一致，不要输出任何其他文字。`

// RelevanceScorer ranks a paragraph's relevance to question authoring.
// Pluggable so the truncation policy can change without touching prompt
// assembly.
type RelevanceScorer interface {
	Score(paragraph string) float64
}

// KeywordScorer scores paragraphs by domain-keyword density.
type KeywordScorer struct {
	Keywords []string
}

// Score returns keyword hits weighted against paragraph length, so a
// short keyword-dense paragraph beats a long rambling one.
func (s KeywordScorer) Score(paragraph string) float64 {
	runes := len([]rune(paragraph))
	if runes == 0 {
		return 0
	}

	hits := 0
	for _, kw := range s.Keywords {
		if kw == "" {
			continue
		}
		hits += strings.Count(paragraph, kw)
	}

	density := float64(hits) / float64(runes)
	// Paragraphs long enough to quote from get a small bonus.
	bonus := 0.0
	if runes >= 40 {
		bonus = 0.001
	}
	return density*100 + bonus
}

// defaultKeywords are generic textbook-definition markers, extended with
// the knowledge point terms when one is given.
var defaultKeywords = []string{
	"定义", "概念", "特点", "原则", "作用", "包括", "是指", "分为", "要求", "方法", "过程",
}

func scorerFor(params exam.Params, cfg Config) RelevanceScorer {
	if cfg.Scorer != nil {
		return cfg.Scorer
	}
	keywords := make([]string, 0, len(defaultKeywords)+1)
	if params.KnowledgePoint != "" {
		keywords = append(keywords, params.KnowledgePoint)
	}
	keywords = append(keywords, defaultKeywords...)
	return KeywordScorer{Keywords: keywords}
}

// selectContent bounds the material to budget runes by greedily keeping
// the highest-scoring paragraphs, reassembled in original order. Falls
// back to prefix truncation when scored selection yields too little
// text to quote from.
func selectContent(content string, budget int, scorer RelevanceScorer) string {
	content = strings.TrimSpace(content)
	if len([]rune(content)) <= budget {
		return content
	}

	paragraphs := splitParagraphs(content)

	type scored struct {
		index int
		text  string
		score float64
	}
	ranked := make([]scored, 0, len(paragraphs))
	for i, p := range paragraphs {
		ranked = append(ranked, scored{index: i, text: p, score: scorer.Score(p)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	used := 0
	picked := make(map[int]bool)
	for _, s := range ranked {
		runes := len([]rune(s.text))
		if used+runes > budget {
			continue
		}
		picked[s.index] = true
		used += runes
	}

	if used < budget/3 {
		return string([]rune(content)[:budget])
	}

	var b strings.Builder
	for i, p := range paragraphs {
		if !picked[i] {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(p)
	}
	return b.String()
}

func splitParagraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BuildPrompt constructs the user message for one generation call. Pure
// and deterministic; the same params and config always yield the same
// prompt, so the orchestrator builds it once per Generate regardless of
// how many models it tries.
func BuildPrompt(params exam.Params, cfg Config) string {
	var b strings.Builder

	b.WriteString("请根据以下学习材料命制 1 道题目。\n\n")
	fmt.Fprintf(&b, "题型：%s\n", typeName(params.Type))
	fmt.Fprintf(&b, "难度：%s\n", difficultyName(params.Difficulty))
	if params.KnowledgePoint != "" {
		fmt.Fprintf(&b, "考查知识点：%s\n", params.KnowledgePoint)
	}

	b.WriteString("\n学习材料：\n")
	b.WriteString(selectContent(params.Content, cfg.ContentBudget, scorerFor(params, cfg)))
	b.WriteString("\n\n命题要求：\n")
	b.WriteString(typeRules(params.Type, cfg))
	b.WriteString("\n输出格式（严格按此 JSON 结构输出）：\n")
	b.WriteString(exampleJSON(params.Type, cfg))

	return b.String()
}

func typeName(t exam.QuestionType) string {
	switch t {
	case exam.TypeSingle:
		return "单选题"
	case exam.TypeMultiple:
		return "多选题"
	case exam.TypeTrueFalse:
		return "判断题"
	}
	return string(t)
}

func difficultyName(d exam.Difficulty) string {
	switch d {
	case exam.DifficultyEasy:
		return "简单"
	case exam.DifficultyMedium:
		return "中等"
	case exam.DifficultyHard:
		return "困难"
	}
	return string(d)
}

func typeRules(t exam.QuestionType, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "1. 题干为陈述句，以%q结尾。\n", cfg.Terminator)

	switch t {
	case exam.TypeTrueFalse:
		fmt.Fprintf(&b, "2. 选项固定为两项：A.%s B.%s。\n", cfg.AffirmText, cfg.NegateText)
		b.WriteString("3. correct_answer 必须是 \"A\" 或 \"B\"。\n")
	case exam.TypeSingle:
		b.WriteString("2. 选项必须是 A、B、C、D 四项，内容互斥，长度相近。\n")
		b.WriteString("3. correct_answer 必须是单个字母，如 \"C\"。\n")
	case exam.TypeMultiple:
		b.WriteString("2. 选项必须是 A、B、C、D 四项，内容互斥，长度相近。\n")
		b.WriteString("3. correct_answer 为 2 至 3 个字母按顺序连写，如 \"ACD\"，不加分隔符。\n")
	}

	citeHint := ""
	if len(cfg.CitationMarkers) > 0 {
		citeHint = fmt.Sprintf("（如 %s...》）", cfg.CitationMarkers[0])
	}
	fmt.Fprintf(&b, "4. analysis.textbook_reference 必须引用材料原文并注明出处%s。\n", citeHint)
	b.WriteString("5. analysis.explanation 说明解题思路。\n")
	fmt.Fprintf(&b, "6. analysis.conclusion 以%q开头并重述答案。\n", cfg.ConclusionPrefix)
	b.WriteString("7. quality_score 为 0 到 1 之间的小数，表示你对本题质量的自评。\n")

	return b.String()
}

func exampleJSON(t exam.QuestionType, cfg Config) string {
	switch t {
	case exam.TypeTrueFalse:
		return fmt.Sprintf(`{
  "stem": "绩效管理是一个持续的循环过程。%s",
  "options": {"A": "%s", "B": "%s"},
  "correct_answer": "A",
  "analysis": {
    "textbook_reference": "《绩效管理》第一章指出：绩效管理是一个持续的循环过程。",
    "explanation": "材料明确指出绩效管理具有持续性和循环性，题干表述与原文一致。",
    "conclusion": "%s 正确。"
  },
  "quality_score": 0.9
}`, cfg.Terminator, cfg.AffirmText, cfg.NegateText, cfg.ConclusionPrefix)
	case exam.TypeMultiple:
		return fmt.Sprintf(`{
  "stem": "下列属于绩效计划阶段工作内容的有%s",
  "options": {"A": "确定绩效目标", "B": "签订绩效合同", "C": "发放绩效奖金", "D": "明确考核标准"},
  "correct_answer": "ABD",
  "analysis": {
    "textbook_reference": "《绩效管理》第二章指出：绩效计划阶段包括确定目标、签订合同与明确标准。",
    "explanation": "发放绩效奖金属于绩效结果应用阶段，不属于计划阶段。",
    "conclusion": "%s ABD。"
  },
  "quality_score": 0.85
}`, cfg.Terminator, cfg.ConclusionPrefix)
	default:
		return fmt.Sprintf(`{
  "stem": "绩效管理过程的第一个环节是%s",
  "options": {"A": "绩效计划", "B": "绩效实施", "C": "绩效考核", "D": "绩效反馈"},
  "correct_answer": "A",
  "analysis": {
    "textbook_reference": "《绩效管理》第一章指出：绩效管理始于绩效计划。",
    "explanation": "绩效管理四个环节依次为计划、实施、考核、反馈，首环节为绩效计划。",
    "conclusion": "%s A。"
  },
  "quality_score": 0.9
}`, cfg.Terminator, cfg.ConclusionPrefix)
	}
}
