package core

import (
	"fmt"
	"math/bits"
)

// EventTypeFilter 是事件类别的快速谓词。
// 两种形态互斥：include（严格白名单）与 exclude（黑名单）。
// nil 过滤器表示放行全部。内部用单个 uint64 位图，Allows 为一次位测试。
type EventTypeFilter struct {
	include bool
	mask    uint64
}

// NewIncludeFilter 构造白名单过滤器：仅集合内的类别放行。
func NewIncludeFilter(kinds ...EventKind) *EventTypeFilter {
	return &EventTypeFilter{include: true, mask: kindMask(kinds)}
}

// NewExcludeFilter 构造黑名单过滤器：集合内的类别一律拦截。
func NewExcludeFilter(kinds ...EventKind) *EventTypeFilter {
	return &EventTypeFilter{include: false, mask: kindMask(kinds)}
}

// NewFilterFromNames 按配置中的类别名称构造过滤器。
// includeOnly 与 exclude 同时非空属于配置错误；两者皆空返回 nil（放行全部）。
func NewFilterFromNames(includeOnly, exclude []string) (*EventTypeFilter, error) {
	if len(includeOnly) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("event filter: include_only and exclude are mutually exclusive")
	}
	names := includeOnly
	if len(names) == 0 {
		names = exclude
	}
	if len(names) == 0 {
		return nil, nil
	}
	kinds := make([]EventKind, 0, len(names))
	for _, name := range names {
		k, ok := KindFromName(name)
		if !ok {
			return nil, fmt.Errorf("event filter: unknown event kind %q", name)
		}
		kinds = append(kinds, k)
	}
	if len(includeOnly) > 0 {
		return NewIncludeFilter(kinds...), nil
	}
	return NewExcludeFilter(kinds...), nil
}

func kindMask(kinds []EventKind) uint64 {
	var m uint64
	for _, k := range kinds {
		if k > KindUnknown && k < kindCount {
			m |= uint64(1) << k
		}
	}
	return m
}

// Allows 判定单个事件类别是否放行。
func (f *EventTypeFilter) Allows(k EventKind) bool {
	if f == nil {
		return true
	}
	hit := f.mask&(uint64(1)<<k) != 0
	if f.include {
		return hit
	}
	return !hit
}

// AllowsDex 判定某协议是否还存在可放行的事件类别。
// 若协议的全部类别都会被拦截，调用方应整体跳过该协议的解码。
func (f *EventTypeFilter) AllowsDex(dex int) bool {
	if f == nil {
		return true
	}
	if dex < 0 || dex >= len(dexKindMask) {
		return false
	}
	dm := dexKindMask[dex]
	if f.include {
		return f.mask&dm != 0
	}
	// 黑名单：只有协议全部类别都被排除时才整体跳过
	return dm&^f.mask != 0
}

// SoleKind 当且仅当过滤器为白名单且只含一个类别时返回该类别。
// 编排器据此走单类别快路径，跳过逐行的 discriminator 查表。
func (f *EventTypeFilter) SoleKind() (EventKind, bool) {
	if f == nil || !f.include || bits.OnesCount64(f.mask) != 1 {
		return KindUnknown, false
	}
	return EventKind(bits.TrailingZeros64(f.mask)), true
}
