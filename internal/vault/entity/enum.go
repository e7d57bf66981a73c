package entity

type AssetType int16

const (
	AssetTypeUnknown AssetType = 0

	AssetTypeStocks      AssetType = 1
	AssetTypeMutualFunds AssetType = 2
	AssetTypeBank        AssetType = 3
	AssetTypeInsurance   AssetType = 4
	AssetTypeCrypto      AssetType = 5
	AssetTypeProperty    AssetType = 6
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeStocks:
		return "Stocks"
	case AssetTypeMutualFunds:
		return "Mutual Funds"
	case AssetTypeBank:
		return "Bank"
	case AssetTypeInsurance:
		return "Insurance"
	case AssetTypeCrypto:
		return "Crypto"
	case AssetTypeProperty:
		return "Property"
	default:
		return "Unknown"
	}
}

func AssetTypeFromString(s string) AssetType {
	switch s {
	case "Stocks":
		return AssetTypeStocks
	case "Mutual Funds":
		return AssetTypeMutualFunds
	case "Bank":
		return AssetTypeBank
	case "Insurance":
		return AssetTypeInsurance
	case "Crypto":
		return AssetTypeCrypto
	case "Property":
		return AssetTypeProperty
	default:
		return AssetTypeUnknown
	}
}

func (t AssetType) IsUnknown() bool {
	return t == AssetTypeUnknown
}
