package dto

import "aqariy_web/internal/feature/prediction/domain/entity"

// PropertyRequest は物件属性のリクエストDTOです。キーは予測APIと同じアラビア語名です。
// 0が有効値のフィールドは未指定と区別するためポインタで受けます。
type PropertyRequest struct {
	Rooms         int     `json:"عدد_الغرف" binding:"required,min=1"`        // 部屋数
	Bathrooms     int     `json:"عدد_الحمامات" binding:"required,min=1"`     // 浴室数
	Furnished     *int    `json:"مفروشة" binding:"required,oneof=0 1"`       // 家具付き
	Area          float64 `json:"مساحة_البناء" binding:"required,gt=0"`      // 延床面積（㎡）
	Floor         *int    `json:"الطابق" binding:"required"`                 // 階数（0=地上階）
	BuildingAge   *int    `json:"عمر_البناء" binding:"required,min=0"`       // 築年数
	Mortgaged     *int    `json:"العقار_مرهون" binding:"required,oneof=0 1"` // 抵当権の有無
	PaymentMethod *int    `json:"طريقة_الدفع" binding:"required,min=0"`      // 支払方法
	Parking       *int    `json:"موقف_سيارات" binding:"omitempty,oneof=0 1"` // 駐車場（任意）
	City          string  `json:"المدينة" binding:"required"`                // 都市名
}

// ToEntity はDTOをドメインの属性に変換します。
func (r PropertyRequest) ToEntity() entity.PropertyAttributes {
	return entity.PropertyAttributes{
		Rooms:         r.Rooms,
		Bathrooms:     r.Bathrooms,
		Furnished:     deref(r.Furnished),
		Area:          r.Area,
		Floor:         deref(r.Floor),
		BuildingAge:   deref(r.BuildingAge),
		Mortgaged:     deref(r.Mortgaged),
		PaymentMethod: deref(r.PaymentMethod),
		Parking:       deref(r.Parking),
		City:          r.City,
	}
}

// JudgeRequest は価格判定のリクエストDTOです。
type JudgeRequest struct {
	PropertyRequest
	ListedPrice float64 `json:"listed_price" binding:"required,gt=0"` // 提示価格
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
