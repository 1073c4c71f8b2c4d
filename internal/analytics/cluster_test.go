package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClusterOpinionsAssignmentsInRange(t *testing.T) {
	opinions := []string{
		"智能核保提升效率",
		"数字风控降低赔付成本",
		"客户体验持续改善",
		"监管政策趋严",
	}
	res := ClusterOpinions(opinions, 4, 100)

	require.Equal(t, 4, res.K)
	require.Len(t, res.Assignments, len(opinions))
	for _, c := range res.Assignments {
		require.GreaterOrEqual(t, c, 0)
		require.Less(t, c, 4)
	}

	total := 0
	for _, n := range res.Sizes {
		total += n
	}
	require.Equal(t, len(opinions), total)
}

func TestClusterOpinionsDeterministic(t *testing.T) {
	opinions := []string{
		"保险科技加速落地",
		"理赔流程自动化",
		"车险定价模型升级",
		"健康险增长迅速",
		"",
		"数据安全引发关注",
	}

	first := ClusterOpinions(opinions, 4, 100)
	second := ClusterOpinions(opinions, 4, 100)

	require.Equal(t, first.Assignments, second.Assignments)
	require.Equal(t, first.Sizes, second.Sizes)
	require.Equal(t, first.Samples, second.Samples)
}

func TestClusterOpinionsSeparatesDistinctTopics(t *testing.T) {
	opinions := []string{
		"apple banana fruit market",
		"apple banana fruit price",
		"car engine wheel factory",
		"car engine wheel export",
	}
	res := ClusterOpinions(opinions, 2, 100)

	require.Equal(t, res.Assignments[0], res.Assignments[1])
	require.Equal(t, res.Assignments[2], res.Assignments[3])
	require.NotEqual(t, res.Assignments[0], res.Assignments[2])
}

func TestClusterOpinionsFewerOpinionsThanK(t *testing.T) {
	res := ClusterOpinions([]string{"仅有一条观点"}, 4, 100)

	require.Len(t, res.Assignments, 1)
	require.Len(t, res.Sizes, 4)
	require.Len(t, res.Samples, 4)

	// 允许空簇，空簇如实报告为空
	emptyClusters := 0
	for i, n := range res.Sizes {
		if n == 0 {
			emptyClusters++
			require.Empty(t, res.Samples[i])
		}
	}
	require.Equal(t, 3, emptyClusters)
}

func TestClusterOpinionsEmptyInput(t *testing.T) {
	res := ClusterOpinions(nil, 4, 100)

	require.Empty(t, res.Assignments)
	require.Equal(t, []int{0, 0, 0, 0}, res.Sizes)
}

func TestClusterOpinionsAllZeroInformation(t *testing.T) {
	// 全部是零信息文档也必须正常终止
	res := ClusterOpinions([]string{"", "", ""}, 2, 100)

	require.Len(t, res.Assignments, 3)
	for _, c := range res.Assignments {
		require.GreaterOrEqual(t, c, 0)
		require.Less(t, c, 2)
	}
	for _, samples := range res.Samples {
		require.Empty(t, samples)
	}
}

func TestClusterOpinionsSamplesAreNonEmptyAndCapped(t *testing.T) {
	opinions := []string{"观点甲", "观点甲", "观点甲", "观点甲", ""}
	res := ClusterOpinions(opinions, 1, 100)

	require.Len(t, res.Samples[0], 3)
	for _, s := range res.Samples[0] {
		require.NotEmpty(t, s)
	}
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"ai", "2024"}, tokenize("AI，2024！"))
	require.Equal(t, []string{"保险", "险科", "科技"}, tokenize("保险科技"))
	require.Empty(t, tokenize("！？。"))
	require.Empty(t, tokenize(""))
}
