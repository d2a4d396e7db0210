package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sol-dex-parser/internal/consts"
)

// 空过滤器放行全部
func TestFilter_NilAllowsAll(t *testing.T) {
	var f *EventTypeFilter
	for k := EventKind(1); k < kindCount; k++ {
		assert.True(t, f.Allows(k))
	}
	assert.True(t, f.AllowsDex(consts.DexPumpfun))
	assert.True(t, f.AllowsDex(consts.DexMeteoraDLMM))
}

// 白名单：仅集合内类别放行
func TestFilter_IncludeOnly(t *testing.T) {
	f := NewIncludeFilter(KindPumpFunTrade, KindRaydiumV4SwapBaseIn)

	assert.True(t, f.Allows(KindPumpFunTrade))
	assert.True(t, f.Allows(KindRaydiumV4SwapBaseIn))
	assert.False(t, f.Allows(KindPumpFunCreate))
	assert.False(t, f.Allows(KindOrcaWhirlpoolSwap))

	// 协议级预判：PumpFun 还有类别放行，Orca 全部被拦
	assert.True(t, f.AllowsDex(consts.DexPumpfun))
	assert.True(t, f.AllowsDex(consts.DexRaydiumV4))
	assert.False(t, f.AllowsDex(consts.DexOrcaWhirlpool))
	assert.False(t, f.AllowsDex(consts.DexBonk))
}

// 黑名单：集合内类别拦截，其余放行
func TestFilter_Exclude(t *testing.T) {
	f := NewExcludeFilter(KindPumpFunTrade)

	assert.False(t, f.Allows(KindPumpFunTrade))
	assert.True(t, f.Allows(KindPumpFunCreate))
	assert.True(t, f.Allows(KindOrcaWhirlpoolSwap))

	// PumpFun 仍有未排除类别，协议不整体跳过
	assert.True(t, f.AllowsDex(consts.DexPumpfun))
}

// 黑名单排除某协议全部类别后，该协议整体跳过
func TestFilter_ExcludeWholeDex(t *testing.T) {
	f := NewExcludeFilter(KindBonkTrade, KindBonkPoolCreate, KindBonkMigrateAmm)
	assert.False(t, f.AllowsDex(consts.DexBonk))
	assert.True(t, f.AllowsDex(consts.DexPumpfun))
}

// 单类别白名单触发快路径标记
func TestFilter_SoleKind(t *testing.T) {
	f := NewIncludeFilter(KindPumpFunTrade)
	k, ok := f.SoleKind()
	assert.True(t, ok)
	assert.Equal(t, KindPumpFunTrade, k)

	f2 := NewIncludeFilter(KindPumpFunTrade, KindPumpFunCreate)
	_, ok = f2.SoleKind()
	assert.False(t, ok)

	f3 := NewExcludeFilter(KindPumpFunTrade)
	_, ok = f3.SoleKind()
	assert.False(t, ok)

	var f4 *EventTypeFilter
	_, ok = f4.SoleKind()
	assert.False(t, ok)
}

// 两种形态互斥，混用属于配置错误
func TestFilter_FromNames(t *testing.T) {
	f, err := NewFilterFromNames([]string{"PumpFunTrade"}, nil)
	assert.NoError(t, err)
	assert.True(t, f.Allows(KindPumpFunTrade))
	assert.False(t, f.Allows(KindPumpFunCreate))

	f, err = NewFilterFromNames(nil, []string{"PumpFunTrade"})
	assert.NoError(t, err)
	assert.False(t, f.Allows(KindPumpFunTrade))
	assert.True(t, f.Allows(KindPumpFunCreate))

	_, err = NewFilterFromNames([]string{"PumpFunTrade"}, []string{"BonkTrade"})
	assert.Error(t, err)

	_, err = NewFilterFromNames([]string{"NoSuchKind"}, nil)
	assert.Error(t, err)

	f, err = NewFilterFromNames(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, f)
}

// 每个类别都归属唯一协议，名称可逆
func TestKind_DexAndNames(t *testing.T) {
	for k := EventKind(1); k < kindCount; k++ {
		assert.NotEqual(t, consts.DexUnknown, k.Dex(), "kind %s has no dex", k)
		got, ok := KindFromName(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
}
