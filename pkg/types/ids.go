package types

// Class identifiers served by this module.
var (
	// DecoderClassID identifies the Netpbm bitmap decoder class.
	DecoderClassID = MustParseGUID("{4DB4F1DE-8B5D-4E8A-9B83-B5164A4F0206}")

	// PropertyStoreClassID identifies the Netpbm property provider class.
	PropertyStoreClassID = MustParseGUID("{72A984E2-345A-4227-AA13-B4F1278EB5CE}")
)

// Codec identity written at registration time.
var (
	ContainerFormatNetpbm = MustParseGUID("{70AB66F5-CD48-43A1-AA29-10131B7F4FF1}")
	VendorID              = MustParseGUID("{8ADBE21C-A720-424E-B238-45AD1052B98C}")

	// CategoryBitmapDecoders is the host category every decoder class is
	// listed under.
	CategoryBitmapDecoders = MustParseGUID("{7ED96837-96F0-4812-B211-F13C24117ED3}")
)

// Interface identifiers understood by QueryInterface.
var (
	IIDUnknown              = MustParseGUID("{00000000-0000-0000-C000-000000000046}")
	IIDClassFactory         = MustParseGUID("{00000001-0000-0000-C000-000000000046}")
	IIDInitializeWithStream = MustParseGUID("{B824B49D-22AC-4161-AC8A-9916E8FA3F7F}")
	IIDPropertyStore        = MustParseGUID("{886D8EEB-8CF2-4446-8D02-CDBA1DBDCF99}")
	IIDBitmapDecoder        = MustParseGUID("{9EDDE9E7-8DEE-47EA-99DF-E6FAF2ED44BF}")
)

// ServedClassIDs lists the class ids GetClassObject recognizes.
var ServedClassIDs = []GUID{
	DecoderClassID,
	PropertyStoreClassID,
}
