package generation

func photo(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=800"
}

type fallbackSet struct {
	canonical string
	pool      []string
}

// Curated images used when live search is unavailable. Every category carries
// five distinct pool entries; the canonical image is the first of them.
var fallbackImages = map[Category]fallbackSet{
	CategoryBusiness: {photo("1664575599736-c5197c684172"), []string{
		photo("1664575599736-c5197c684172"), photo("1556761175-5973dc0f32e7"), photo("1522202176988-66273c2fd55f"),
		photo("1497215842964-222b430dc094"), photo("1551836022-deb4988cc6c0"),
	}},
	CategoryTechnology: {photo("1526374965328-7f61d4dc18c5"), []string{
		photo("1526374965328-7f61d4dc18c5"), photo("1488590528505-98d2b5aba04b"), photo("1550745165-9bc0b252726f"),
		photo("1518770660439-4636190af475"), photo("1519389950473-47ba0277781c"),
	}},
	CategoryNature: {photo("1501854140801-50d01698950b"), []string{
		photo("1501854140801-50d01698950b"), photo("1470071459604-3b5ec3a7fe05"), photo("1441974231531-c6227db76b6e"),
		photo("1472214103451-9374bd1c798e"), photo("1469474968028-56623f02e42e"),
	}},
	CategoryFood: {photo("1504674900247-0877df9cc836"), []string{
		photo("1504674900247-0877df9cc836"), photo("1512621776951-a57141f2eefd"), photo("1498837167922-ddd27525d352"),
		photo("1504754524776-8f4f37790ca0"), photo("1499028344343-cd173ffc68a9"),
	}},
	CategoryTravel: {photo("1488085061387-422e29b40080"), []string{
		photo("1488085061387-422e29b40080"), photo("1500835556837-99ac94a94552"), photo("1528543606781-2f6e6857f318"),
		photo("1476514525535-07fb3b4ae5f1"), photo("1473496169904-658ba7c44d8a"),
	}},
	CategorySports: {photo("1461896836934-ffe607ba8211"), []string{
		photo("1461896836934-ffe607ba8211"), photo("1517649763962-0c623066013b"), photo("1579952363873-27f3bade9f55"),
		photo("1530549387789-4c1017266635"), photo("1517649281203-dad836b4b028"),
	}},
	CategoryEducation: {photo("1503676260728-1c00da094a0b"), []string{
		photo("1503676260728-1c00da094a0b"), photo("1523050854058-8df90110c9f1"), photo("1497633762265-9d179a990aa6"),
		photo("1546410531-bb4caa6b424d"), photo("1509062522246-3755977927d7"),
	}},
	CategoryHealth: {photo("1505576399279-565b52d4ac71"), []string{
		photo("1505576399279-565b52d4ac71"), photo("1506126613408-eca07ce68773"), photo("1498837167922-ddd27525d352"),
		photo("1532938911079-1b06ac7ceec7"), photo("1571019613454-1cb2f99b2d8b"),
	}},
	CategoryScience: {photo("1507413245164-6160d8298b31"), []string{
		photo("1507413245164-6160d8298b31"), photo("1518152006812-edab29b069ac"), photo("1603126857599-f6e157fa2fe6"),
		photo("1582719471384-894fbb16e074"), photo("1576086213369-97a306d36557"),
	}},
	CategoryArt: {photo("1579783483458-83d02161294e"), []string{
		photo("1579783483458-83d02161294e"), photo("1499781350541-7783f6c6a0c8"), photo("1513364776144-60967b0f800f"),
		photo("1548081087-11c73fc3ce86"), photo("1560419015-7c427e8ae5ba"),
	}},
	CategoryMusic: {photo("1511379938547-c1f69419868d"), []string{
		photo("1511379938547-c1f69419868d"), photo("1507838153414-b4b713384a76"), photo("1514320291840-2e0a9bf2a9ae"),
		photo("1470225620780-dba8ba36b745"), photo("1458560871784-56d23406c091"),
	}},
	CategoryFinance: {photo("1565514501303-256e0ea65d49"), []string{
		photo("1565514501303-256e0ea65d49"), photo("1638913975386-d61f0ec6500d"), photo("1620714223084-8fcacc6dfd8d"),
		photo("1526304640581-d334cdbbf45e"), photo("1556761175-5973dc0f32e7"),
	}},
	CategoryHistory: {photo("1461360370896-8a6edf403f35"), []string{
		photo("1461360370896-8a6edf403f35"), photo("1507692049790-de58290a4334"), photo("1481253127861-534498168948"),
		photo("1499781350541-7783f6c6a0c8"), photo("1548081087-11c73fc3ce86"),
	}},
	CategoryFashion: {photo("1516762689617-e1cffcef479d"), []string{
		photo("1516762689617-e1cffcef479d"), photo("1513364776144-60967b0f800f"), photo("1560419015-7c427e8ae5ba"),
		photo("1579783483458-83d02161294e"), photo("1493612276216-ee3925520721"),
	}},
	CategoryArchitecture: {photo("1481253127861-534498168948"), []string{
		photo("1481253127861-534498168948"), photo("1497215842964-222b430dc094"), photo("1523050854058-8df90110c9f1"),
		photo("1500835556837-99ac94a94552"), photo("1528543606781-2f6e6857f318"),
	}},
	CategoryCars: {photo("1492144534655-ae79c964c9d7"), []string{
		photo("1492144534655-ae79c964c9d7"), photo("1473496169904-658ba7c44d8a"), photo("1476514525535-07fb3b4ae5f1"),
		photo("1469474968028-56623f02e42e"), photo("1472214103451-9374bd1c798e"),
	}},
	CategorySpace: {photo("1462331940025-496dfbfc7564"), []string{
		photo("1462331940025-496dfbfc7564"), photo("1507413245164-6160d8298b31"), photo("1518152006812-edab29b069ac"),
		photo("1603126857599-f6e157fa2fe6"), photo("1557682250-33bd709cbe85"),
	}},
	CategoryAnimals: {photo("1437622368342-7a3d73a34c8f"), []string{
		photo("1437622368342-7a3d73a34c8f"), photo("1441974231531-c6227db76b6e"), photo("1470071459604-3b5ec3a7fe05"),
		photo("1501854140801-50d01698950b"), photo("1472214103451-9374bd1c798e"),
	}},
	CategoryGaming: {photo("1550745165-9bc0b252726f"), []string{
		photo("1550745165-9bc0b252726f"), photo("1526374965328-7f61d4dc18c5"), photo("1518770660439-4636190af475"),
		photo("1488590528505-98d2b5aba04b"), photo("1604871000636-074fa5117945"),
	}},
	CategoryPolitics: {photo("1575320181282-9afab399332c"), []string{
		photo("1575320181282-9afab399332c"), photo("1529156069898-49953e39b3ac"), photo("1551836022-deb4988cc6c0"),
		photo("1556761175-5973dc0f32e7"), photo("1461360370896-8a6edf403f35"),
	}},
	CategoryReligion: {photo("1507692049790-de58290a4334"), []string{
		photo("1507692049790-de58290a4334"), photo("1506126613408-eca07ce68773"), photo("1548081087-11c73fc3ce86"),
		photo("1469474968028-56623f02e42e"), photo("1461360370896-8a6edf403f35"),
	}},
	CategoryEntertainment: {photo("1603739903239-8b6e64c3b185"), []string{
		photo("1603739903239-8b6e64c3b185"), photo("1470225620780-dba8ba36b745"), photo("1514320291840-2e0a9bf2a9ae"),
		photo("1507838153414-b4b713384a76"), photo("1458560871784-56d23406c091"),
	}},
	CategoryMilitary: {photo("1564217296983-04f9af98c33c"), []string{
		photo("1564217296983-04f9af98c33c"), photo("1461360370896-8a6edf403f35"), photo("1473496169904-658ba7c44d8a"),
		photo("1470071459604-3b5ec3a7fe05"), photo("1519389950473-47ba0277781c"),
	}},
	CategoryInnovation: {photo("1485827404703-89b55fcc595e"), []string{
		photo("1485827404703-89b55fcc595e"), photo("1518770660439-4636190af475"), photo("1488590528505-98d2b5aba04b"),
		photo("1522202176988-66273c2fd55f"), photo("1620714223084-8fcacc6dfd8d"),
	}},
	CategoryMotivation: {photo("1519834785169-98be25ec3f84"), []string{
		photo("1519834785169-98be25ec3f84"), photo("1571019613454-1cb2f99b2d8b"), photo("1476514525535-07fb3b4ae5f1"),
		photo("1506126613408-eca07ce68773"), photo("1469474968028-56623f02e42e"),
	}},
	CategoryLeadership: {photo("1519389950473-47ba0277781c"), []string{
		photo("1519389950473-47ba0277781c"), photo("1522202176988-66273c2fd55f"), photo("1551836022-deb4988cc6c0"),
		photo("1556761175-5973dc0f32e7"), photo("1497215842964-222b430dc094"),
	}},
	CategoryClimate: {photo("1593990965209-125a37c20ca5"), []string{
		photo("1593990965209-125a37c20ca5"), photo("1470071459604-3b5ec3a7fe05"), photo("1441974231531-c6227db76b6e"),
		photo("1472214103451-9374bd1c798e"), photo("1501854140801-50d01698950b"),
	}},
	CategoryDevelopment: {photo("1589793907316-f94025b52665"), []string{
		photo("1589793907316-f94025b52665"), photo("1488590528505-98d2b5aba04b"), photo("1522202176988-66273c2fd55f"),
		photo("1518770660439-4636190af475"), photo("1551836022-deb4988cc6c0"),
	}},
	CategoryCommunication: {photo("1529156069898-49953e39b3ac"), []string{
		photo("1529156069898-49953e39b3ac"), photo("1556761175-5973dc0f32e7"), photo("1522202176988-66273c2fd55f"),
		photo("1551836022-deb4988cc6c0"), photo("1523050854058-8df90110c9f1"),
	}},
	CategoryDefault: {photo("1618005182384-a83a8bd57fbe"), []string{
		photo("1618005182384-a83a8bd57fbe"), photo("1604871000636-074fa5117945"), photo("1523821741446-edb2b68bb7a0"),
		photo("1493612276216-ee3925520721"), photo("1557682250-33bd709cbe85"),
	}},
}

func fallbackFor(c Category) fallbackSet {
	if set, ok := fallbackImages[c]; ok {
		return set
	}
	return fallbackImages[CategoryDefault]
}

// FallbackPool returns a copy of the curated pool of c.
func FallbackPool(c Category) []string {
	return append([]string(nil), fallbackFor(c).pool...)
}

// pickFallback walks the fallback order: unused pool entries of the category,
// the category's canonical image, unused canonical images of other
// categories. fresh is false when every avenue was used up and the returned
// URL is a repeat drawn from the aggregate pool.
func pickFallback(c Category, used *UsedImages, intn func(int) int) (url string, fresh bool) {
	set := fallbackFor(c)

	if unused := used.Filter(set.pool); len(unused) > 0 {
		return unused[intn(len(unused))], true
	}
	if !used.Has(set.canonical) {
		return set.canonical, true
	}

	var others []string
	for _, other := range Categories() {
		if other == c {
			continue
		}
		if canon := fallbackFor(other).canonical; !used.Has(canon) {
			others = append(others, canon)
		}
	}
	if len(others) > 0 {
		return others[intn(len(others))], true
	}

	var all []string
	for _, other := range Categories() {
		all = append(all, fallbackFor(other).pool...)
	}
	return all[intn(len(all))], false
}
