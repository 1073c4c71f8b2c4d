package analytics

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultClusterCount 观点聚类的默认簇数
	DefaultClusterCount = 4
	// DefaultMaxFeatures 向量化词表的默认上限
	DefaultMaxFeatures = 100

	// 固定随机种子，同一输入的聚类结果跨运行可复现
	clusterSeed   = 42
	maxIterations = 100
	// 每簇最多展示的代表性观点数
	sampleLimit = 3
)

// ClusterResult 观点聚类的只读结果视图
type ClusterResult struct {
	K           int        `json:"簇数"`
	Assignments []int      `json:"聚类标签"` // 与输入观点序列下标对齐
	Sizes       []int      `json:"样本数"`  // 每簇的样本数，长度恒为 K
	Samples     [][]string `json:"代表观点"` // 每簇最多 3 条非空观点，按表顺序
}

// ClusterOpinions 把观点文本向量化后做 k-means 聚类。
// 空字符串视为零信息文档，映射到零向量照常参与分配；
// 非空观点数小于 k 时允许出现空簇，空簇在 Sizes/Samples
// 中如实报告为空，不作为错误。k、maxFeatures 不大于零时
// 使用默认值。
func ClusterOpinions(opinions []string, k, maxFeatures int) ClusterResult {
	if k <= 0 {
		k = DefaultClusterCount
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	res := ClusterResult{
		K:           k,
		Assignments: make([]int, len(opinions)),
		Sizes:       make([]int, k),
		Samples:     make([][]string, k),
	}
	for i := range res.Samples {
		res.Samples[i] = []string{}
	}
	if len(opinions) == 0 {
		return res
	}

	vectors := vectorize(opinions, maxFeatures)
	res.Assignments = kmeans(vectors, k)

	for i, c := range res.Assignments {
		res.Sizes[c]++
		if opinions[i] != "" && len(res.Samples[c]) < sampleLimit {
			res.Samples[c] = append(res.Samples[c], opinions[i])
		}
	}
	return res
}

// vectorize 构建 TF-IDF 矩阵：词表取文档频率最高的前
// maxFeatures 个词项（频率相同按字典序，保证确定性），
// 行向量做 L2 归一化，没有可提取词元的文档得到零向量。
func vectorize(opinions []string, maxFeatures int) *mat.Dense {
	docs := make([][]string, len(opinions))
	df := make(map[string]int)
	for i, text := range opinions {
		docs[i] = tokenize(text)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	cols := make(map[string]int, len(terms))
	for i, t := range terms {
		cols[t] = i
	}

	// 词表为空时退化成单列零矩阵，k-means 仍能运行
	width := len(terms)
	if width == 0 {
		width = 1
	}
	m := mat.NewDense(len(opinions), width, nil)

	n := float64(len(opinions))
	for i, doc := range docs {
		for _, tok := range doc {
			j, ok := cols[tok]
			if !ok {
				continue
			}
			m.Set(i, j, m.At(i, j)+1)
		}
		// 平滑 IDF：ln((1+n)/(1+df)) + 1
		norm := 0.0
		for _, t := range terms {
			j := cols[t]
			if tf := m.At(i, j); tf > 0 {
				w := tf * (math.Log((1+n)/(1+float64(df[t]))) + 1)
				m.Set(i, j, w)
				norm += w * w
			}
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := 0; j < len(terms); j++ {
				m.Set(i, j, m.At(i, j)/norm)
			}
		}
	}
	return m
}

// tokenize 切分观点文本：连续的拉丁字母/数字作为一个词元并转小写，
// CJK 字符按相邻二元组切分，单个 CJK 字符的短语保留单字
func tokenize(text string) []string {
	var tokens []string
	var latin []rune
	var cjk []rune

	flushLatin := func() {
		if len(latin) > 0 {
			tokens = append(tokens, strings.ToLower(string(latin)))
			latin = latin[:0]
		}
	}
	flushCJK := func() {
		if len(cjk) == 1 {
			tokens = append(tokens, string(cjk))
		}
		for i := 0; i+1 < len(cjk); i++ {
			tokens = append(tokens, string(cjk[i:i+2]))
		}
		cjk = cjk[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushLatin()
			cjk = append(cjk, r)
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			flushCJK()
			latin = append(latin, r)
		default:
			flushLatin()
			flushCJK()
		}
	}
	flushLatin()
	flushCJK()
	return tokens
}

// kmeans 基于固定种子的 k-means，返回每行的簇标签。
// 质心用 k-means++ 方式初始化，收敛条件为分配不再变化。
func kmeans(data *mat.Dense, k int) []int {
	n, d := data.Dims()
	rng := rand.New(rand.NewSource(clusterSeed))

	centroids := initCentroids(data, k, rng)
	assignments := make([]int, n)

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i := 0; i < n; i++ {
			best, bestDist := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				dist := squaredDistance(data.RawRowView(i), centroids.RawRowView(c))
				if dist < bestDist {
					best, bestDist = c, dist
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// 重新计算质心，空簇保留旧质心
		sums := mat.NewDense(k, d, nil)
		counts := make([]int, k)
		for i := 0; i < n; i++ {
			c := assignments[i]
			counts[c]++
			row := data.RawRowView(i)
			for j := 0; j < d; j++ {
				sums.Set(c, j, sums.At(c, j)+row[j])
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := 0; j < d; j++ {
				centroids.Set(c, j, sums.At(c, j)/float64(counts[c]))
			}
		}
	}
	return assignments
}

// initCentroids k-means++ 初始化：首个质心随机选，后续按到最近
// 已选质心的平方距离加权抽样，所有随机性来自传入的 rng
func initCentroids(data *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(k, d, nil)
	centroids.SetRow(0, data.RawRowView(rng.Intn(n)))

	for c := 1; c < k; c++ {
		weights := make([]float64, n)
		total := 0.0
		for i := 0; i < n; i++ {
			minDist := math.Inf(1)
			for prev := 0; prev < c; prev++ {
				if dist := squaredDistance(data.RawRowView(i), centroids.RawRowView(prev)); dist < minDist {
					minDist = dist
				}
			}
			weights[i] = minDist
			total += minDist
		}
		if total == 0 {
			// 所有点与已选质心重合，退化为随机选取
			centroids.SetRow(c, data.RawRowView(rng.Intn(n)))
			continue
		}
		target := rng.Float64() * total
		acc := 0.0
		idx := n - 1
		for i, w := range weights {
			acc += w
			if acc >= target {
				idx = i
				break
			}
		}
		centroids.SetRow(c, data.RawRowView(idx))
	}
	return centroids
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
