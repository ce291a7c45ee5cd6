package planning

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// MemoKey 月工时缓存键
//
// Version 为门店网格版本，任一周记录写入或删除时递增，旧键随之失效。
type MemoKey struct {
	Shop     string
	Month    string
	Version  int64
	Subject  string
	Interval int
}

// EmployeeMemoKey 员工月工时缓存键
func EmployeeMemoKey(shop string, month time.Time, version int64, employee string, interval int) MemoKey {
	return MemoKey{Shop: shop, Month: MonthKey(month), Version: version, Subject: "emp:" + employee, Interval: interval}
}

// ShopMemoKey 门店月工时缓存键，名单以哈希参与
func ShopMemoKey(shop string, month time.Time, version int64, roster []string, interval int) MemoKey {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(roster, "\x00")))
	return MemoKey{Shop: shop, Month: MonthKey(month), Version: version, Subject: fmt.Sprintf("shop:%x", h.Sum64()), Interval: interval}
}

func (k MemoKey) String() string {
	return fmt.Sprintf("planning:monthly:%s:%s:v%d:%s:i%d", k.Shop, k.Month, k.Version, k.Subject, k.Interval)
}
